package models

import "time"

// Category identifies the kind of municipal issue a report covers
type Category string

// Report categories handled by the analysis agents
const (
	CategoryWaste      Category = "waste"
	CategoryRoad       Category = "road"
	CategoryElectrical Category = "electrical"
)

// ValidCategory reports whether c is a known report category
func ValidCategory(c Category) bool {
	switch c {
	case CategoryWaste, CategoryRoad, CategoryElectrical:
		return true
	}
	return false
}

// Status tracks where a report sits in its lifecycle
type Status string

// Report lifecycle statuses. Status only changes through an explicit
// status update call, never as a side effect of reads.
const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// ValidStatus reports whether s is a known lifecycle status
func ValidStatus(s Status) bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// StorageTier marks which storage backend actually holds a report, so
// API responses stay honest about durability
type StorageTier string

// Storage tiers
const (
	TierRemote StorageTier = "persisted_remote"
	TierLocal  StorageTier = "persisted_local"
)

// Location is a resolved submission location. AreaName may be set without
// coordinates when the area was matched from text alone.
type Location struct {
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	AreaName  string  `bson:"areaName,omitempty" json:"areaName,omitempty"`
}

// Correspondence is a generated email draft for a human to review and
// send; the system never dispatches it
type Correspondence struct {
	Recipient string `bson:"recipient" json:"recipient"`
	Subject   string `bson:"subject" json:"subject"`
	Body      string `bson:"body" json:"body"`
}

// Report is the durable record of a single citizen submission
type Report struct {
	ID             string          `bson:"_id" json:"id"`
	Category       Category        `bson:"category" json:"category"`
	Status         Status          `bson:"status" json:"status"`
	Location       *Location       `bson:"location,omitempty" json:"location,omitempty"`
	ImageRef       string          `bson:"imageRef,omitempty" json:"imageRef,omitempty"`
	ImageTier      StorageTier     `bson:"imageTier,omitempty" json:"imageTier,omitempty"`
	Verdict        Verdict         `bson:"verdict" json:"verdict"`
	Authority      Authority       `bson:"authority" json:"authority"`
	Correspondence *Correspondence `bson:"correspondence,omitempty" json:"correspondence,omitempty"`
	StorageTier    StorageTier     `bson:"storageTier" json:"storageTier"`
	UserQuery      string          `bson:"userQuery,omitempty" json:"userQuery,omitempty"`
	StatusNotes    string          `bson:"statusNotes,omitempty" json:"statusNotes,omitempty"`
	CreatedAt      time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time       `bson:"updatedAt" json:"updatedAt"`
}
