package agents

import (
	"context"

	"github.com/nammacity/city-buddy-api/gemini"
	"github.com/nammacity/city-buddy-api/models"
)

// ElectricalAgent analyzes photos of electricity and street light issues
type ElectricalAgent struct {
	AI *gemini.Client
}

type electricalAnalysis struct {
	IssuePresent         bool   `json:"issue_present"`
	DivisionName         string `json:"division_name"`
	IssueType            string `json:"issue_type"`
	Severity             string `json:"severity"`
	SituationDescription string `json:"situation_description"`
	ActionableAdvice     string `json:"actionable_advice"`
}

// Analyze sends the image to the model with the electrical-specific prompt
func (a *ElectricalAgent) Analyze(ctx context.Context, in Input) (models.Verdict, error) {
	return analyzeImage(ctx, a.AI, in, "electrical", electricalPrompt(in), parseElectrical)
}

func electricalPrompt(in Input) string {
	return `Analyze the attached image for electricity or street lighting issues in Bengaluru, India.
` + locationContext(in) + `
Look for issues such as street lights not working or damaged, power lines down, electrical poles damaged or leaning, transformer issues, power outages affecting street lighting, or exposed electrical wires.

Provide a structured JSON response with the following keys:
- "issue_present": A boolean (true or false) indicating if an electrical issue is visible.
- "division_name": The best-matching division/area name for an officials database lookup.
- "issue_type": Category like "Street Light", "Power Line", "Transformer", "Electrical Pole", "Power Outage", "Exposed Wiring", or "Other".
- "severity": A rating of 'Low', 'Medium', or 'High'. 'Low' for minor issues, 'Medium' for moderate problems, 'High' for dangerous or urgent issues.
- "situation_description": A one-sentence summary of the electrical issue.
- "actionable_advice": Suggest a one-sentence action for a citizen.
Only output the raw JSON object, with no other text or markdown. If no electrical issue is present, set "issue_present" to false and provide default values for other keys.`
}

func parseElectrical(raw string) (models.Verdict, error) {
	var a electricalAnalysis
	if err := parseVerdictJSON(raw, &a); err != nil {
		return models.Verdict{}, err
	}
	v := models.Verdict{
		IssuePresent: boolPtr(a.IssuePresent),
		Description:  a.SituationDescription,
		Advice:       a.ActionableAdvice,
		AreaHint:     a.DivisionName,
	}
	if a.IssuePresent {
		v.IssueType = a.IssueType
		v.Severity = normalizeSeverity(a.Severity)
	}
	return v, nil
}
