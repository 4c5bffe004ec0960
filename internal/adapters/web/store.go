package web

import (
	"context"
	"sync"
	"time"

	"balance-insight/internal/app"
)

// analysisTTL is how long an analysis stays retrievable after its upload.
// There is no persistence beyond the session; expired analyses require a
// fresh upload.
const analysisTTL = 30 * time.Minute

type storedAnalysis struct {
	Result    *app.AnalysisResult
	CreatedAt time.Time
}

// analysisStore is a thread-safe in-memory store with TTL expiry. Each entry
// holds one analysis run's own tables; concurrent uploads never alias.
type analysisStore struct {
	mu      sync.Mutex
	entries map[string]storedAnalysis
}

func newAnalysisStore() *analysisStore {
	return &analysisStore{entries: make(map[string]storedAnalysis)}
}

func (s *analysisStore) put(id string, result *app.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = storedAnalysis{Result: result, CreatedAt: time.Now()}
}

func (s *analysisStore) get(id string) (*app.AnalysisResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if time.Since(e.CreatedAt) > analysisTTL {
		delete(s.entries, id)
		return nil, false
	}
	return e.Result, true
}

// startPurge starts a background goroutine that evicts expired entries every
// 5 minutes.
func (s *analysisStore) startPurge(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				for id, e := range s.entries {
					if time.Since(e.CreatedAt) > analysisTTL {
						delete(s.entries, id)
					}
				}
				s.mu.Unlock()
			}
		}
	}()
}
