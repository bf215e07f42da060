// Package cliui provides reusable terminal UI helpers (styles, step
// indicators) for membank CLI commands.
package cliui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")

	KeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	ValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	DimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	RankStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	ScoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ContentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

// spinnerFrames matches bubbletea's spinner.Dot pattern.
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Step prints an animated spinner while fn runs, then replaces it with
// a ✓ or ✗ checkmark and elapsed time.
func Step(w io.Writer, msg string, fn func() error) error {
	done := make(chan struct{})
	var mu sync.Mutex

	go func() {
		frame := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			mu.Lock()
			fmt.Fprintf(w, "\r  %s %s",
				spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)]),
				msg,
			)
			mu.Unlock()

			select {
			case <-done:
				return
			case <-ticker.C:
				frame++
			}
		}
	}()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	close(done)

	mu.Lock()
	defer mu.Unlock()

	mark := SuccessMark
	if err != nil {
		mark = FailMark
	}
	fmt.Fprintf(w, "\r  %s %s %s\n", mark, msg, DimStyle.Render(elapsed.Round(time.Millisecond).String()))

	return err
}
