package databases

import (
	"sync"
	"time"

	"github.com/nammacity/city-buddy-api/models"
)

// LocalReportStore is the in-process fallback tier. It only ever answers
// for ids it issued itself; reads for remote-tier ids pass it by.
type LocalReportStore struct {
	mu      sync.RWMutex
	reports map[string]models.Report
}

// NewLocalReportStore initializes an empty fallback store
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{reports: make(map[string]models.Report)}
}

// Create stores a copy of the report under its id
func (s *LocalReportStore) Create(report models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = report
}

// Owns reports whether this store issued the given id
func (s *LocalReportStore) Owns(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.reports[id]
	return ok
}

// Get returns the report for id, or false when unknown
func (s *LocalReportStore) Get(id string) (models.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	return r, ok
}

// UpdateStatus mutates the status of a held report. Idempotent: setting
// the same status twice succeeds both times.
func (s *LocalReportStore) UpdateStatus(id string, status models.Status, notes string, updatedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return false
	}
	r.Status = status
	if notes != "" {
		r.StatusNotes = notes
	}
	r.UpdatedAt = updatedAt
	s.reports[id] = r
	return true
}

// Count returns how many reports are stranded on the local tier
func (s *LocalReportStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
