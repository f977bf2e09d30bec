package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/models"
)

// Intent is the dispatch decision for an incoming request
type Intent string

// The closed intent set
const (
	IntentGeneralChat      Intent = "general_chat"
	IntentEventSearch      Intent = "event_search"
	IntentReportWaste      Intent = "report_waste"
	IntentReportRoad       Intent = "report_road"
	IntentReportElectrical Intent = "report_electrical"
	IntentNeedsCategory    Intent = "needs_category"
	IntentUnresolved       Intent = "unresolved"
)

// Category returns the report category for report intents
func (i Intent) Category() (models.Category, bool) {
	switch i {
	case IntentReportWaste:
		return models.CategoryWaste, true
	case IntentReportRoad:
		return models.CategoryRoad, true
	case IntentReportElectrical:
		return models.CategoryElectrical, true
	}
	return "", false
}

func reportIntent(c models.Category) Intent {
	switch c {
	case models.CategoryWaste:
		return IntentReportWaste
	case models.CategoryRoad:
		return IntentReportRoad
	case models.CategoryElectrical:
		return IntentReportElectrical
	}
	return IntentUnresolved
}

// categoryHints maps text keywords to report categories; checked in order
var categoryHints = []struct {
	keyword  string
	category models.Category
}{
	{"trash", models.CategoryWaste},
	{"garbage", models.CategoryWaste},
	{"waste", models.CategoryWaste},
	{"litter", models.CategoryWaste},
	{"pothole", models.CategoryRoad},
	{"road", models.CategoryRoad},
	{"street light", models.CategoryElectrical},
	{"streetlight", models.CategoryElectrical},
	{"transformer", models.CategoryElectrical},
	{"power", models.CategoryElectrical},
	{"electric", models.CategoryElectrical},
	{"wire", models.CategoryElectrical},
}

func categoryHint(text string) (models.Category, bool) {
	t := strings.ToLower(text)
	for _, h := range categoryHints {
		if strings.Contains(t, h.keyword) {
			return h.category, true
		}
	}
	return "", false
}

const classifyPromptTemplate = `Analyze the user's query and determine the primary intent.
The available intents are: 'report_waste', 'report_road', 'report_electrical', 'event_search', 'general_chat'.

Intent definitions:
- report_waste: User wants to report garbage, litter, or waste management issues
- report_road: User wants to report potholes, road damage, or road maintenance issues
- report_electrical: User wants to report street light, power line, or electrical infrastructure issues
- event_search: User wants to find local events, activities, or happenings
- general_chat: Any other query or general information request

User Query: "%s"
An image is attached: %t

Return only the single intent name. For example: report_waste`

// Classify decides which agent should handle the request. Pure apart
// from the single AI call; an unusable classifier yields unresolved (or
// a report intent when an attached image plus a text hint disambiguate).
func (o *Orchestrator) Classify(ctx context.Context, text string, hasImage bool) Intent {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if hasImage {
			return IntentNeedsCategory
		}
		return IntentUnresolved
	}

	raw, err := o.AI.Generate(ctx, classifyPrompt(trimmed, hasImage), nil)
	if err != nil {
		zap.S().Warnw("intent classification failed", "error", err)
		return o.classifyFallback(trimmed, hasImage)
	}

	intent := parseIntentToken(raw)
	if intent == IntentUnresolved {
		return o.classifyFallback(trimmed, hasImage)
	}
	// An attached image with a chat-ish classification usually means the
	// citizen is reporting something; bias toward a report when the text
	// hints at a category, and ask rather than guess when it does not.
	if hasImage && intent == IntentGeneralChat {
		if c, ok := categoryHint(trimmed); ok {
			return reportIntent(c)
		}
		return IntentNeedsCategory
	}
	return intent
}

func (o *Orchestrator) classifyFallback(text string, hasImage bool) Intent {
	if hasImage {
		if c, ok := categoryHint(text); ok {
			return reportIntent(c)
		}
		return IntentNeedsCategory
	}
	return IntentUnresolved
}

func classifyPrompt(text string, hasImage bool) string {
	return fmt.Sprintf(classifyPromptTemplate, text, hasImage)
}

func parseIntentToken(raw string) Intent {
	token := strings.ToLower(strings.TrimSpace(raw))
	token = strings.Trim(token, "\"'`.")
	switch token {
	case "report_waste", "report_trash":
		return IntentReportWaste
	case "report_road", "report_pothole":
		return IntentReportRoad
	case "report_electrical", "report_electricity":
		return IntentReportElectrical
	case "event_search", "find_events":
		return IntentEventSearch
	case "general_chat", "general_question":
		return IntentGeneralChat
	}
	return IntentUnresolved
}
