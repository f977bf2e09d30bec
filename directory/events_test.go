package directory_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nammacity/city-buddy-api/directory"
	"github.com/nammacity/city-buddy-api/models"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func testEvents() []models.Event {
	return []models.Event{
		{Title: "Indie Music Night", Date: day(5), Time: "08:00 PM", Venue: "Fandom at Gilly's", Category: "music"},
		{Title: "Heritage Walk", Date: day(5), Time: "07:30 AM", Venue: "Cubbon Park", Category: "culture"},
		{Title: "Startup Meetup", Date: day(12), Time: "11:00 AM", Venue: "Bangalore International Centre", Category: "tech"},
		{Title: "Frisbee Open", Date: day(25), Time: "09:00 AM", Venue: "St Joseph's Ground", Category: "sports"},
		{Title: "Last Month Concert", Date: day(1).AddDate(0, -1, 0), Time: "06:30 PM", Venue: "Chowdiah Hall", Category: "music"},
	}
}

func TestEventDirectory_UpcomingWindow(t *testing.T) {
	dir := directory.NewEventDirectory(testEvents())
	now := day(1)

	got := dir.Upcoming(now, 14, "", "")
	assert.Len(t, got, 3)

	// ordered by date, earliest time first on equal dates
	assert.Equal(t, "Heritage Walk", got[0].Title)
	assert.Equal(t, "Indie Music Night", got[1].Title)
	assert.Equal(t, "Startup Meetup", got[2].Title)
}

func TestEventDirectory_UpcomingFilters(t *testing.T) {
	dir := directory.NewEventDirectory(testEvents())
	now := day(1)

	byCategory := dir.Upcoming(now, 30, "music", "")
	assert.Len(t, byCategory, 1)
	assert.Equal(t, "Indie Music Night", byCategory[0].Title)

	byVenue := dir.Upcoming(now, 30, "", "cubbon")
	assert.Len(t, byVenue, 1)
	assert.Equal(t, "Heritage Walk", byVenue[0].Title)

	assert.Empty(t, dir.Upcoming(now, 30, "theatre", ""))
}

func TestEventDirectory_UpcomingExcludesPast(t *testing.T) {
	dir := directory.NewEventDirectory(testEvents())

	got := dir.Upcoming(day(1), 60, "", "")
	for _, e := range got {
		assert.False(t, e.Date.Before(day(1)), "past event %q returned", e.Title)
	}
}

func TestLoadEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	csvData := "title,date,time,venue,category,description\n" +
		"Indie Music Night,2026-09-05,08:00 PM,Fandom at Gilly's,music,Live sets from four bands\n" +
		"Broken Row,not-a-date,08:00 PM,Somewhere,music,skipped\n" +
		"Heritage Walk,2026-09-06,07:30 AM,Cubbon Park,culture,Guided walk\n"
	assert.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	dir, err := directory.LoadEvents(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, dir.Len())

	got := dir.Upcoming(day(1), 14, "", "")
	assert.Len(t, got, 2)
	assert.Equal(t, "Indie Music Night", got[0].Title)
}

func TestLoadEvents_MissingFile(t *testing.T) {
	_, err := directory.LoadEvents(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
