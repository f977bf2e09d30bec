package directory

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/models"
)

// EventDirectory is the read-only event listing, loaded once at start
type EventDirectory struct {
	events []models.Event
}

// NewEventDirectory builds a directory from a fixed event slice
func NewEventDirectory(events []models.Event) *EventDirectory {
	return &EventDirectory{events: events}
}

// LoadEvents reads the events CSV. Expected header:
// title,date,time,venue,category,description with dates as YYYY-MM-DD.
// Rows with unparseable dates are skipped, matching how the source data
// tolerates malformed listing rows.
func LoadEvents(path string) (*EventDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open events csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse events csv: %w", err)
	}
	if len(rows) == 0 {
		return NewEventDirectory(nil), nil
	}

	cols := headerIndex(rows[0])
	var events []models.Event
	for _, row := range rows[1:] {
		rawDate := strings.ReplaceAll(field(row, cols, "date"), "‑", "-")
		date, err := time.Parse("2006-01-02", rawDate)
		if err != nil {
			continue
		}
		events = append(events, models.Event{
			Title:       field(row, cols, "title"),
			Date:        date,
			Time:        field(row, cols, "time"),
			Venue:       field(row, cols, "venue"),
			Category:    field(row, cols, "category"),
			Description: field(row, cols, "description"),
		})
	}
	zap.S().Infow("event directory loaded", "path", path, "events", len(events))
	return NewEventDirectory(events), nil
}

// Len returns the number of listed events
func (d *EventDirectory) Len() int { return len(d.events) }

// Upcoming returns events between now and now+days, optionally filtered
// by category and venue substrings, ordered by date ascending (time of
// day breaks date ties).
func (d *EventDirectory) Upcoming(now time.Time, days int, category, venue string) []models.Event {
	start := now.Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, days)
	cat := normalize(category)
	ven := normalize(venue)

	var out []models.Event
	for _, e := range d.events {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if cat != "" && !strings.Contains(normalize(e.Category), cat) {
			continue
		}
		if ven != "" && !strings.Contains(normalize(e.Venue), ven) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	return out
}
