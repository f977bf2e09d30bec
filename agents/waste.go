package agents

import (
	"context"

	"github.com/nammacity/city-buddy-api/gemini"
	"github.com/nammacity/city-buddy-api/models"
)

// WasteAgent analyzes photos of garbage and waste management issues
type WasteAgent struct {
	AI *gemini.Client
}

type wasteAnalysis struct {
	IssuePresent         bool   `json:"issue_present"`
	WardName             string `json:"ward_name"`
	TrashType            string `json:"trash_type"`
	Severity             string `json:"severity"`
	SituationDescription string `json:"situation_description"`
	ActionableAdvice     string `json:"actionable_advice"`
}

// Analyze sends the image to the model with the waste-specific prompt
func (a *WasteAgent) Analyze(ctx context.Context, in Input) (models.Verdict, error) {
	return analyzeImage(ctx, a.AI, in, "waste", wastePrompt(in), parseWaste)
}

func wastePrompt(in Input) string {
	return `Analyze the attached image of a suspected garbage pile in Bengaluru, India.
` + locationContext(in) + `
Provide a structured JSON response with the following keys:
- "issue_present": A boolean (true or false) indicating if a waste issue is visible.
- "ward_name": The best-matching ward/area name for an officials database lookup.
- "trash_type": Briefly describe the primary type of trash visible (e.g., "Mixed municipal solid waste", "Construction debris", "Plastic waste").
- "severity": Rate the severity on a scale of 'Low', 'Medium', or 'High' based on the volume and potential hazard.
- "situation_description": A one-sentence summary of the situation.
- "actionable_advice": Suggest a one-sentence action for a citizen.
Only output the raw JSON object, with no other text or markdown. If no waste issue is present, set "issue_present" to false and provide default values for other keys.`
}

func parseWaste(raw string) (models.Verdict, error) {
	var a wasteAnalysis
	if err := parseVerdictJSON(raw, &a); err != nil {
		return models.Verdict{}, err
	}
	v := models.Verdict{
		IssuePresent: boolPtr(a.IssuePresent),
		IssueType:    a.TrashType,
		Description:  a.SituationDescription,
		Advice:       a.ActionableAdvice,
		AreaHint:     a.WardName,
	}
	if a.IssuePresent {
		v.Severity = normalizeSeverity(a.Severity)
	}
	return v, nil
}
