// Package db owns the process-wide incident collection: confidence-gated
// creation, queries, and durable persistence as a single JSON document.
package db

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"citypulse/types"
)

// ConfidenceThreshold gates auto-approval. A decision at or above it is
// auto-approved; anything below needs a human in the loop.
const ConfidenceThreshold = 0.6

// Store is the single writer for incident records. All mutations go through
// the mutex so concurrent requests cannot interleave the whole-file rewrite.
type Store struct {
	mu        sync.Mutex
	path      string
	log       *slog.Logger
	incidents []types.Incident
}

// Open rehydrates the store from path. A missing or corrupt file starts an
// empty store; that is logged, never fatal.
func Open(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{path: path, log: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("could not read incidents file, starting fresh", "path", path, "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.incidents); err != nil {
		logger.Warn("corrupt incidents file, starting fresh", "path", path, "error", err)
		s.incidents = nil
		return s
	}
	logger.Info("loaded incidents from storage", "path", path, "count", len(s.incidents))
	return s
}

// Create gates the decision, assigns identity and timestamp, appends the
// record and synchronously rewrites the durable file. A failed write is
// logged as a durability gap; the in-memory append still stands, so the
// request succeeds either way.
func (s *Store) Create(decision types.AIDecision, evidence []types.EvidenceSnippet) types.Incident {
	status := types.NeedsHumanReview
	if decision.Confidence >= ConfidenceThreshold {
		status = types.AutoApproved
	}

	incident := types.Incident{
		IncidentID: uuid.NewString(),
		Status:     status,
		AIDecision: decision,
		Evidence:   evidence,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidents = append(s.incidents, incident)
	if err := s.persistLocked(); err != nil {
		s.log.Error("failed to persist incidents, record kept in memory only",
			"path", s.path, "incident_id", incident.IncidentID, "error", err)
	}

	s.log.Info("confidence gate",
		"incident_id", incident.IncidentID,
		"confidence", decision.Confidence,
		"status", status,
		"total", len(s.incidents),
	)
	return incident
}

// persistLocked rewrites the whole document. Caller holds the mutex.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.incidents, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// All returns every incident in creation order.
func (s *Store) All() []types.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Incident, len(s.incidents))
	copy(out, s.incidents)
	return out
}

// ByID looks up one incident.
func (s *Store) ByID(id string) (types.Incident, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, incident := range s.incidents {
		if incident.IncidentID == id {
			return incident, true
		}
	}
	return types.Incident{}, false
}

// ByStatus filters incidents by approval status.
func (s *Store) ByStatus(status types.IncidentStatus) []types.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.Incident
	for _, incident := range s.incidents {
		if incident.Status == status {
			out = append(out, incident)
		}
	}
	return out
}

// Stats counts incidents per status.
func (s *Store) Stats() types.IncidentStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := types.IncidentStats{Total: len(s.incidents)}
	for _, incident := range s.incidents {
		switch incident.Status {
		case types.AutoApproved:
			stats.AutoApproved++
		case types.NeedsHumanReview:
			stats.NeedsHumanReview++
		}
	}
	return stats
}
