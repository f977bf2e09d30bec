package databases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/models"
)

// ErrReportNotFound is returned when neither tier knows the given id
var ErrReportNotFound = errors.New("report not found")

const remoteTimeout = 10 * time.Second

// ReportStore is the dual-tier report persistence layer. The remote
// document store is the primary tier; any primary failure falls back to
// the in-process store and the report carries a tier marker saying so.
// Once a report lands on a tier, reads and status updates for its id hit
// that same tier; there is no migration between tiers.
type ReportStore struct {
	remote ReportDatabase
	local  *LocalReportStore
	now    func() time.Time
}

// NewReportStore wires the two tiers together. remote may be nil when the
// document store never came up; every create then lands on the local tier.
func NewReportStore(remote ReportDatabase, local *LocalReportStore) *ReportStore {
	return &ReportStore{remote: remote, local: local, now: time.Now}
}

// NewReportID allocates a globally unique report id. Wall-clock prefix
// keeps ids roughly sortable; the uuid suffix guarantees uniqueness under
// concurrent creates.
func NewReportID() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// Create assigns the id and timestamps, then persists the report on the
// primary tier, falling back to the local tier on any primary failure.
// The returned error is always nil unless the context was cancelled; a
// citizen submission must never lose its tracking id to a storage outage.
func (s *ReportStore) Create(ctx context.Context, report *models.Report) (string, error) {
	report.ID = NewReportID()
	report.Status = models.StatusSubmitted
	report.CreatedAt = s.now().UTC()
	report.UpdatedAt = report.CreatedAt
	report.StorageTier = models.TierRemote

	if s.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, remoteTimeout)
		defer cancel()
		err := s.remote.InsertOne(rctx, *report)
		if err == nil {
			return report.ID, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		zap.S().Warnw("remote report store unavailable, falling back to local tier",
			"reportId", report.ID,
			"error", err,
		)
	}

	report.StorageTier = models.TierLocal
	s.local.Create(*report)
	return report.ID, nil
}

// Get returns the report for id from whichever tier owns it
func (s *ReportStore) Get(ctx context.Context, id string) (*models.Report, error) {
	if r, ok := s.local.Get(id); ok {
		return &r, nil
	}
	if s.remote == nil {
		return nil, ErrReportNotFound
	}
	rctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	report, err := s.remote.FindOne(rctx, bson.M{"_id": id})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// UpdateStatus sets a new lifecycle status on the owning tier. Idempotent:
// repeating the same status succeeds every time.
func (s *ReportStore) UpdateStatus(ctx context.Context, id string, status models.Status, notes string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	if s.local.Owns(id) {
		s.local.UpdateStatus(id, status, notes, s.now().UTC())
		return nil
	}
	if s.remote == nil {
		return ErrReportNotFound
	}
	update := bson.M{"status": status, "updatedAt": s.now().UTC()}
	if notes != "" {
		update["statusNotes"] = notes
	}
	rctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	matched, err := s.remote.UpdateOne(rctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrReportNotFound
	}
	return nil
}

// LocalCount exposes how many reports are stranded on the fallback tier
func (s *ReportStore) LocalCount() int {
	return s.local.Count()
}

// RemoteAvailable reports whether a primary tier was configured at all
func (s *ReportStore) RemoteAvailable() bool {
	return s.remote != nil
}
