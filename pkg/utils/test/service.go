// Package testutils provides shared fakes for membank tests.
package testutils

import (
	"context"
	"sync"

	"github.com/aletheiahq/membank/pkg/bank"
)

// RetainCall records one Retain invocation.
type RetainCall struct {
	Content string
	Opts    bank.RetainOptions
}

// RecallCall records one Recall invocation.
type RecallCall struct {
	Query string
	Opts  bank.RecallOptions
}

// MockService is a test memory service that records calls and returns
// configurable results. Safe for concurrent use.
type MockService struct {
	mu sync.Mutex

	// RetainCalls accumulates every Retain invocation in order.
	RetainCalls []RetainCall

	// RecallCalls accumulates every Recall invocation in order.
	RecallCalls []RecallCall

	// RecallResults is returned by Recall for any query.
	RecallResults []bank.RecallResult

	// RetainErr causes Retain to fail.
	RetainErr error

	// RecallErr causes Recall to fail.
	RecallErr error

	// RetainErrAfter fails Retain once this many calls have succeeded.
	// Zero means never.
	RetainErrAfter int
}

var _ bank.Service = (*MockService)(nil)

// NewMockService creates a new mock memory service.
func NewMockService() *MockService {
	return &MockService{}
}

func (m *MockService) Retain(_ context.Context, content string, opts bank.RetainOptions) (bank.RetainResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RetainErr != nil {
		return bank.RetainResult{}, m.RetainErr
	}
	if m.RetainErrAfter > 0 && len(m.RetainCalls) >= m.RetainErrAfter {
		return bank.RetainResult{}, &bank.ServiceError{StatusCode: 500, Body: "mock failure"}
	}

	m.RetainCalls = append(m.RetainCalls, RetainCall{Content: content, Opts: opts})
	return bank.RetainResult{Success: true, ItemsCount: 1}, nil
}

func (m *MockService) Recall(_ context.Context, query string, opts bank.RecallOptions) ([]bank.RecallResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecallErr != nil {
		return nil, m.RecallErr
	}

	m.RecallCalls = append(m.RecallCalls, RecallCall{Query: query, Opts: opts})
	return m.RecallResults, nil
}

func (m *MockService) Bank() string {
	return "testbank"
}

// Retained returns the contents submitted via Retain, in order.
func (m *MockService) Retained() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	contents := make([]string, len(m.RetainCalls))
	for i, call := range m.RetainCalls {
		contents[i] = call.Content
	}
	return contents
}
