package orchestrator

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/nammacity/city-buddy-api/models"
)

// senderAddress is the from line on generated drafts. The system never
// sends mail; the draft is for a human to review and forward.
const (
	senderName    = "Namma City Buddy"
	senderAddress = "reports@nammacitybuddy.in"
)

var subjectPrefixes = map[models.Category]string{
	models.CategoryWaste:      "Garbage/Waste Management Issue",
	models.CategoryRoad:       "Pothole/Road Damage Report",
	models.CategoryElectrical: "URGENT: Electrical Infrastructure Issue",
}

var issueLabels = map[models.Category]string{
	models.CategoryWaste:      "Type of Waste",
	models.CategoryRoad:       "Type of Damage",
	models.CategoryElectrical: "Type of Issue",
}

// buildCorrespondence drafts the recipient/subject/body for a report.
// The recipient is the resolved authority's email, or the documented
// fallback address, so it is never empty.
func buildCorrespondence(category models.Category, verdict models.Verdict, authority models.Authority, loc *models.Location, fallbackEmail string) *models.Correspondence {
	recipient := strings.TrimSpace(authority.Email)
	if recipient == "" {
		recipient = fallbackEmail
	}

	area := authority.Area
	if area == "" && loc != nil {
		area = loc.AreaName
	}
	if area == "" {
		area = "Unknown Area"
	}

	severity := verdict.Severity
	if severity == "" {
		severity = "unassessed"
	}

	subject := fmt.Sprintf("%s - %s (Severity: %s)", subjectPrefixes[category], area, severity)
	body := draftBody(category, verdict, authority, loc, area)

	// Built through the mail helper so the draft round-trips through the
	// same construction path an operator's mail tooling would use.
	from := mail.NewEmail(senderName, senderAddress)
	to := mail.NewEmail(authority.Name, recipient)
	msg := mail.NewSingleEmail(from, subject, to, body, body)

	return &models.Correspondence{
		Recipient: msg.Personalizations[0].To[0].Address,
		Subject:   msg.Subject,
		Body:      body,
	}
}

func draftBody(category models.Category, verdict models.Verdict, authority models.Authority, loc *models.Location, area string) string {
	var b strings.Builder
	b.WriteString("Dear Official,\n\n")
	b.WriteString(fmt.Sprintf("I am writing to report a %s issue requiring attention in %s.\n\n", category, area))

	b.WriteString("Location Details:\n")
	b.WriteString(fmt.Sprintf("- Area: %s\n", area))
	if loc != nil && (loc.Latitude != 0 || loc.Longitude != 0) {
		b.WriteString(fmt.Sprintf("- Coordinates: %.6f, %.6f\n", loc.Latitude, loc.Longitude))
	}
	b.WriteString("\nIssue Details:\n")
	if verdict.IssueType != "" {
		b.WriteString(fmt.Sprintf("- %s: %s\n", issueLabels[category], verdict.IssueType))
	}
	if verdict.Severity != "" {
		b.WriteString(fmt.Sprintf("- Severity Level: %s\n", verdict.Severity))
	}
	if verdict.Description != "" {
		b.WriteString(fmt.Sprintf("- Description: %s\n", verdict.Description))
	}

	b.WriteString("\nPlease arrange for this issue to be addressed promptly. ")
	b.WriteString("I would appreciate an acknowledgment of this report and timely action to resolve it.\n\n")
	b.WriteString("Best regards,\nA Concerned Citizen\n\n---\n")
	b.WriteString("This report was generated through the Namma City Buddy assistant.\n")
	return b.String()
}
