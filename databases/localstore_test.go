package databases_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nammacity/city-buddy-api/databases"
	"github.com/nammacity/city-buddy-api/models"
)

func TestLocalReportStore_CreateAndGet(t *testing.T) {
	store := databases.NewLocalReportStore()

	report := models.Report{
		ID:       "1700000000-deadbeef",
		Category: models.CategoryWaste,
		Status:   models.StatusSubmitted,
	}
	store.Create(report)

	got, ok := store.Get("1700000000-deadbeef")
	assert.True(t, ok)
	assert.Equal(t, report, got)

	_, ok = store.Get("1700000000-cafebabe")
	assert.False(t, ok)

	assert.True(t, store.Owns("1700000000-deadbeef"))
	assert.False(t, store.Owns("1700000000-cafebabe"))
	assert.Equal(t, 1, store.Count())
}

func TestLocalReportStore_UpdateStatus(t *testing.T) {
	store := databases.NewLocalReportStore()
	store.Create(models.Report{ID: "1700000000-deadbeef", Status: models.StatusSubmitted})

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ok := store.UpdateStatus("1700000000-deadbeef", models.StatusResolved, "fixed", now)
	assert.True(t, ok)

	got, _ := store.Get("1700000000-deadbeef")
	assert.Equal(t, models.StatusResolved, got.Status)
	assert.Equal(t, "fixed", got.StatusNotes)
	assert.Equal(t, now, got.UpdatedAt)

	// repeating the same status succeeds and keeps the earlier notes
	ok = store.UpdateStatus("1700000000-deadbeef", models.StatusResolved, "", now.Add(time.Hour))
	assert.True(t, ok)

	got, _ = store.Get("1700000000-deadbeef")
	assert.Equal(t, models.StatusResolved, got.Status)
	assert.Equal(t, "fixed", got.StatusNotes)
	assert.Equal(t, now.Add(time.Hour), got.UpdatedAt)

	ok = store.UpdateStatus("1700000000-cafebabe", models.StatusResolved, "", now)
	assert.False(t, ok)
}
