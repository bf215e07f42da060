package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aletheiahq/membank/pkg/config"
	"github.com/aletheiahq/membank/pkg/logger"
	"github.com/aletheiahq/membank/pkg/plugin"
)

// memoryService fakes the remote bank over HTTP: retain bodies are recorded,
// recall answers with canned results.
type memoryService struct {
	mu      sync.Mutex
	retains []string
	results []map[string]any
}

func (m *memoryService) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()

		if strings.HasSuffix(r.URL.Path, "/recall") {
			Expect(json.NewEncoder(w).Encode(map[string]any{"results": m.results})).To(Succeed())
			return
		}

		var body struct {
			Items []struct {
				Content string `json:"content"`
			} `json:"items"`
		}
		Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
		for _, item := range body.Items {
			m.retains = append(m.retains, item.Content)
		}
		Expect(json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"items_count": len(body.Items),
		})).To(Succeed())
	})
}

func (m *memoryService) retained() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.retains...)
}

var _ = Describe("Server", func() {
	var (
		remote *memoryService
		server *Server
	)

	BeforeEach(func() {
		remote = &memoryService{}
		upstream := httptest.NewServer(remote.handler())
		DeferCleanup(upstream.Close)

		cfg := config.NewDefaultConfig()
		cfg.Service.BaseURL = upstream.URL
		on := true
		cfg.Hooks.AutoRecall = &on

		p, err := plugin.New(cfg, logger.Nop())
		Expect(err).NotTo(HaveOccurred())

		server, err = NewServer(Config{ListenAddr: ":0"}, p, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("GET /ping", func() {
		It("responds with pong", func() {
			resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.TrimSpace(string(body))).To(Equal(`"pong"`))
		})
	})

	Describe("POST /hooks/turn-start", func() {
		It("rejects malformed payloads", func() {
			req := httptest.NewRequest(http.MethodPost, "/hooks/turn-start", strings.NewReader("{nope"))
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("returns an empty injection for a short prompt", func() {
			req := httptest.NewRequest(http.MethodPost, "/hooks/turn-start", strings.NewReader(`{"prompt":"hi"}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var out TurnStartResponse
			Expect(json.NewDecoder(resp.Body).Decode(&out)).To(Succeed())
			Expect(out.PrependContext).To(BeEmpty())
		})

		It("returns the rendered injection when memories match", func() {
			remote.results = []map[string]any{
				{"memory_id": "m1", "content": "user prefers dark mode", "score": 0.9},
			}

			req := httptest.NewRequest(http.MethodPost, "/hooks/turn-start",
				strings.NewReader(`{"prompt":"which theme should I pick?"}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var out TurnStartResponse
			Expect(json.NewDecoder(resp.Body).Decode(&out)).To(Succeed())
			Expect(out.PrependContext).To(ContainSubstring("<relevant-memories>"))
			Expect(out.PrependContext).To(ContainSubstring("- user prefers dark mode"))
		})
	})

	Describe("POST /hooks/turn-end", func() {
		It("rejects malformed payloads", func() {
			req := httptest.NewRequest(http.MethodPost, "/hooks/turn-end", strings.NewReader("{nope"))
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("acks with 202 and retains asynchronously", func() {
			payload := `{"success":true,"messages":[{"role":"user","content":"I prefer tabs over spaces"}]}`
			req := httptest.NewRequest(http.MethodPost, "/hooks/turn-end", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusAccepted))

			Eventually(remote.retained).Should(Equal([]string{"I prefer tabs over spaces"}))
		})
	})

	Describe("MCP mount", func() {
		It("serves the tool endpoint", func() {
			// A GET without a session is rejected by the stateless handler,
			// but the route must exist (no fiber 404).
			resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/mcp", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).NotTo(Equal(http.StatusNotFound))
		})
	})
})
