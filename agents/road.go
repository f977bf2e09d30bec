package agents

import (
	"context"
	"fmt"

	"github.com/nammacity/city-buddy-api/gemini"
	"github.com/nammacity/city-buddy-api/models"
)

// RoadAgent analyzes photos of potholes and road damage
type RoadAgent struct {
	AI *gemini.Client
}

type roadAnalysis struct {
	IssuePresent         bool   `json:"issue_present"`
	WardName             string `json:"ward_name"`
	PotholeCount         int    `json:"pothole_count"`
	Severity             string `json:"severity"`
	SituationDescription string `json:"situation_description"`
	ActionableAdvice     string `json:"actionable_advice"`
}

// Analyze sends the image to the model with the road-specific prompt
func (a *RoadAgent) Analyze(ctx context.Context, in Input) (models.Verdict, error) {
	return analyzeImage(ctx, a.AI, in, "road", roadPrompt(in), parseRoad)
}

func roadPrompt(in Input) string {
	return `Analyze the attached image of a road in Bengaluru, India for potholes or road damage.
` + locationContext(in) + `
Provide a structured JSON response with the following keys:
- "issue_present": A boolean (true or false) indicating if a pothole or road damage is visible.
- "ward_name": The best-matching ward/area name for an officials database lookup.
- "pothole_count": An integer for the number of distinct potholes visible.
- "severity": A rating of 'Low', 'Medium', or 'High' for the worst pothole visible. 'Low' for small/shallow, 'Medium' for moderate size, 'High' for large, deep, or hazardous-looking potholes.
- "situation_description": A one-sentence summary of the situation (e.g., "A large, water-filled pothole is visible in the center of the road.").
- "actionable_advice": Suggest a one-sentence action for a citizen.
Only output the raw JSON object, with no other text or markdown. If no pothole is present, set "issue_present" to false and provide default values for other keys.`
}

func parseRoad(raw string) (models.Verdict, error) {
	var a roadAnalysis
	if err := parseVerdictJSON(raw, &a); err != nil {
		return models.Verdict{}, err
	}
	v := models.Verdict{
		IssuePresent: boolPtr(a.IssuePresent),
		Description:  a.SituationDescription,
		Advice:       a.ActionableAdvice,
		AreaHint:     a.WardName,
	}
	if a.IssuePresent {
		v.Severity = normalizeSeverity(a.Severity)
		v.IssueType = "Pothole"
		if a.PotholeCount > 1 {
			v.IssueType = fmt.Sprintf("Potholes (%d)", a.PotholeCount)
		}
	}
	return v, nil
}
