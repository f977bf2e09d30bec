package agents

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/directory"
	"github.com/nammacity/city-buddy-api/gemini"
	"github.com/nammacity/city-buddy-api/models"
	"github.com/nammacity/city-buddy-api/storage"
)

// ErrImageRequired is returned by the visual agents when no image bytes
// were supplied
var ErrImageRequired = errors.New("an image is required for this report category")

const retryBackoff = 2 * time.Second

// Input carries everything an analysis agent may need
type Input struct {
	Image    []byte
	TextHint string
	Location *models.Location
}

// Analyzer is the single polymorphic analysis capability. Adding a
// category means adding a variant and a registry entry, not changing the
// dispatcher.
type Analyzer interface {
	Analyze(ctx context.Context, in Input) (models.Verdict, error)
}

// Registry is the closed set of analysis agents
type Registry struct {
	byCategory map[models.Category]Analyzer
	Events     *EventAgent
}

// NewRegistry wires the four agent variants
func NewRegistry(ai *gemini.Client, events *directory.EventDirectory) *Registry {
	return &Registry{
		byCategory: map[models.Category]Analyzer{
			models.CategoryWaste:      &WasteAgent{AI: ai},
			models.CategoryRoad:       &RoadAgent{AI: ai},
			models.CategoryElectrical: &ElectricalAgent{AI: ai},
		},
		Events: NewEventAgent(events),
	}
}

// ForCategory returns the agent handling the given report category
func (r *Registry) ForCategory(c models.Category) (Analyzer, bool) {
	a, ok := r.byCategory[c]
	return a, ok
}

// analyzeImage runs the shared visual-agent flow: validate the image,
// call the model with at most one retry, and parse the structured answer.
// A model failure after the retry degrades into an unknown verdict rather
// than an error, so the report still gets a tracking id.
func analyzeImage(ctx context.Context, ai *gemini.Client, in Input, agentName, prompt string, parse func(string) (models.Verdict, error)) (models.Verdict, error) {
	if len(in.Image) == 0 {
		return models.Verdict{}, ErrImageRequired
	}
	contentType, err := storage.ValidateImage(in.Image)
	if err != nil {
		return models.Verdict{}, err
	}

	raw, err := generateWithRetry(ctx, ai, prompt, &gemini.ImagePart{
		MIMEType: contentType,
		Data:     in.Image,
	})
	if err != nil {
		zap.S().Warnw("analysis degraded, model unreachable after retry",
			"agent", agentName,
			"error", err,
		)
		return degradedVerdict(), nil
	}

	verdict, err := parse(raw)
	if err != nil {
		zap.S().Warnw("analysis degraded, unparseable model output",
			"agent", agentName,
			"error", err,
		)
		return degradedVerdict(), nil
	}
	return verdict, nil
}

// generateWithRetry retries exactly once, with a short fixed backoff,
// matching the at-most-one-retry contract for transient failures
func generateWithRetry(ctx context.Context, ai *gemini.Client, prompt string, image *gemini.ImagePart) (string, error) {
	out, err := ai.Generate(ctx, prompt, image)
	if err == nil {
		return out, nil
	}
	zap.S().Debugw("model call failed, retrying once", "error", err)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(retryBackoff):
	}
	return ai.Generate(ctx, prompt, image)
}

func degradedVerdict() models.Verdict {
	return models.Verdict{
		Description: "Automated analysis was unavailable; the report has been recorded for manual review.",
	}
}

func parseVerdictJSON(raw string, v interface{}) error {
	jsonStr, err := gemini.ExtractJSON(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(jsonStr), v)
}

// normalizeSeverity maps the model's Low/Medium/High wording onto the
// report severity enum; anything unrecognized becomes empty
func normalizeSeverity(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case models.SeverityLow:
		return models.SeverityLow
	case models.SeverityMedium:
		return models.SeverityMedium
	case models.SeverityHigh:
		return models.SeverityHigh
	}
	return ""
}

// locationContext renders the optional location lines shared by the
// visual agent prompts
func locationContext(in Input) string {
	var b strings.Builder
	if loc := in.Location; loc != nil {
		if loc.Latitude != 0 || loc.Longitude != 0 {
			b.WriteString("The photo was taken at latitude ")
			b.WriteString(formatCoord(loc.Latitude))
			b.WriteString(", longitude ")
			b.WriteString(formatCoord(loc.Longitude))
			b.WriteString(".\n")
		}
		if loc.AreaName != "" {
			b.WriteString("The area is believed to be '" + loc.AreaName + "'.\n")
		}
	}
	if in.TextHint != "" {
		b.WriteString("The citizen wrote: \"" + in.TextHint + "\"\n")
	}
	return b.String()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func boolPtr(b bool) *bool { return &b }
