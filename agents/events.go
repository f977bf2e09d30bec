package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nammacity/city-buddy-api/directory"
	"github.com/nammacity/city-buddy-api/models"
)

// Event search defaults: look two weeks ahead, return at most ten
// listings so a chat reply stays readable.
const (
	eventDaysAhead = 14
	maxEvents      = 10
)

// categoryKeywords maps query words to listing categories; checked in
// order so matching stays deterministic
var categoryKeywords = []struct{ keyword, category string }{
	{"tech", "Tech"},
	{"startup", "Startup"},
	{"networking", "Networking"},
	{"music", "Music"},
	{"cultural", "Cultural"},
	{"fitness", "Fitness"},
	{"wellness", "Wellness"},
	{"gaming", "Gaming"},
	{"dance", "Dance"},
	{"nature", "Nature"},
}

// venueKeywords are neighbourhood names recognized in event queries
var venueKeywords = []string{
	"cubbon",
	"hsr",
	"whitefield",
	"koramangala",
	"indiranagar",
	"jayanagar",
	"malleshwaram",
}

// EventAgent answers event-discovery queries from the static listing.
// It never calls the AI capability, so this path has no external
// dependency and lower latency.
type EventAgent struct {
	Events *directory.EventDirectory
	Now    func() time.Time
}

// NewEventAgent builds the agent over the event directory
func NewEventAgent(events *directory.EventDirectory) *EventAgent {
	return &EventAgent{Events: events, Now: time.Now}
}

// Analyze filters the listing by keywords in the query and returns the
// matches, date ascending, capped at maxEvents
func (a *EventAgent) Analyze(_ context.Context, in Input) (models.Verdict, error) {
	query := strings.ToLower(in.TextHint)

	var category string
	for _, kc := range categoryKeywords {
		if strings.Contains(query, kc.keyword) {
			category = kc.category
			break
		}
	}
	var venue string
	for _, v := range venueKeywords {
		if strings.Contains(query, v) {
			venue = v
			break
		}
	}

	events := a.Events.Upcoming(a.Now(), eventDaysAhead, category, venue)
	if len(events) > maxEvents {
		events = events[:maxEvents]
	}

	message := fmt.Sprintf("Found %d upcoming events in Bengaluru.", len(events))
	if len(events) == 0 {
		message = "No upcoming events found matching your criteria. Try searching for 'tech events', 'music events', or events in specific areas like 'Cubbon Park'."
	}
	return models.Verdict{Events: events, Description: message}, nil
}
