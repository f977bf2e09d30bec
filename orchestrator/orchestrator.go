package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/agents"
	"github.com/nammacity/city-buddy-api/databases"
	"github.com/nammacity/city-buddy-api/directory"
	"github.com/nammacity/city-buddy-api/gemini"
	"github.com/nammacity/city-buddy-api/geo"
	"github.com/nammacity/city-buddy-api/models"
	"github.com/nammacity/city-buddy-api/storage"
)

// apologeticReply is what the citizen sees when classification itself is
// unusable; the request still returns 200.
const apologeticReply = "Sorry, I could not work out what you need right now. " +
	"You can report waste, road or electrical issues (attach a photo), or ask about local events."

// clarifyReply asks for the category instead of guessing one when an
// image arrives without a usable hint.
const clarifyReply = "Thanks for the photo! What would you like to report: a waste, road, or electrical issue?"

const chatPromptTemplate = `You are Namma City Buddy, a helpful AI assistant for Bengaluru citizens.
You can help with:
- Reporting trash and waste management issues
- Reporting potholes and road problems
- Reporting street light and electrical issues
- Finding local events and activities
- General questions about city services

User asked: "%s"

Provide a helpful, friendly response. If the question relates to city services you can handle,
guide them on how to use your specific features. Keep responses concise and actionable.`

// Orchestrator composes the classifier, location resolver, analysis
// agents and the two persistence tiers. Every external request enters
// here; handlers never touch the agents directly.
type Orchestrator struct {
	AI          *gemini.Client
	Agents      *agents.Registry
	Locator     *geo.Resolver
	Authorities *directory.AuthorityDirectory
	Reports     *databases.ReportStore
	Blobs       storage.BlobStore
}

// Request is a single citizen submission
type Request struct {
	Query string
	Image []byte
	// Category is set by the dedicated report endpoints, skipping
	// classification; empty for chat/analyze requests.
	Category models.Category
}

// Response is the unified result payload
type Response struct {
	Intent   Intent         `json:"intent"`
	Reply    string         `json:"reply,omitempty"`
	Report   *models.Report `json:"report,omitempty"`
	Events   []models.Event `json:"events,omitempty"`
	Message  string         `json:"message,omitempty"`
	Degraded bool           `json:"degraded,omitempty"`
}

// Process runs the per-request state machine:
// received -> classified -> location resolved -> analyzed -> persisted ->
// responded. Only validation failures return an error; every other
// condition degrades into a successful response with markers, because the
// citizen must always get an answer and, for reports, a tracking id.
func (o *Orchestrator) Process(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	intent := reportIntent(req.Category)
	if req.Category == "" {
		intent = o.Classify(ctx, req.Query, len(req.Image) > 0)
	}
	zap.S().Infow("request classified",
		"intent", intent,
		"hasImage", len(req.Image) > 0,
		"elapsed", time.Since(start),
	)

	switch intent {
	case IntentUnresolved:
		return &Response{Intent: intent, Reply: apologeticReply, Degraded: true}, nil
	case IntentNeedsCategory:
		return &Response{Intent: intent, Reply: clarifyReply}, nil
	case IntentGeneralChat:
		return o.chat(ctx, req.Query), nil
	case IntentEventSearch:
		verdict, _ := o.Agents.Events.Analyze(ctx, agents.Input{TextHint: req.Query})
		return &Response{Intent: intent, Events: verdict.Events, Message: verdict.Description}, nil
	}

	category, _ := intent.Category()
	return o.processReport(ctx, intent, category, req)
}

func (o *Orchestrator) chat(ctx context.Context, query string) *Response {
	reply, err := o.AI.Generate(ctx, fmt.Sprintf(chatPromptTemplate, query), nil)
	if err != nil {
		zap.S().Warnw("chat reply degraded", "error", err)
		return &Response{Intent: IntentGeneralChat, Reply: apologeticReply, Degraded: true}
	}
	return &Response{Intent: IntentGeneralChat, Reply: reply}
}

func (o *Orchestrator) processReport(ctx context.Context, intent Intent, category models.Category, req Request) (*Response, error) {
	agent, ok := o.Agents.ForCategory(category)
	if !ok {
		return nil, fmt.Errorf("no analysis agent for category %q", category)
	}
	if len(req.Image) == 0 {
		return nil, agents.ErrImageRequired
	}
	// Pre-condition check before anything leaves the process
	if _, err := storage.ValidateImage(req.Image); err != nil {
		return nil, err
	}

	location := o.Locator.Resolve(req.Image, req.Query)

	verdict, err := agent.Analyze(ctx, agents.Input{
		Image:    req.Image,
		TextHint: req.Query,
		Location: location,
	})
	if err != nil {
		// Analyze only errors on pre-conditions, which were checked above,
		// or context cancellation
		return nil, err
	}

	authority := o.resolveAuthority(location, verdict.AreaHint)

	report := models.Report{
		Category:  category,
		Location:  location,
		Verdict:   verdict,
		Authority: authority,
		UserQuery: req.Query,
	}

	imageRef, imageTier, err := o.Blobs.Put(ctx, req.Image)
	if err != nil {
		zap.S().Errorw("image could not be stored on any tier", "error", err)
	} else {
		report.ImageRef = imageRef
		report.ImageTier = imageTier
	}

	// Informational reports (checked but clean) keep the audit trail but
	// get no correspondence draft
	if verdict.IssuePresent == nil || *verdict.IssuePresent {
		report.Correspondence = buildCorrespondence(category, verdict, authority, location, o.Authorities.Fallback().Email)
	}

	if _, err := o.Reports.Create(ctx, &report); err != nil {
		return nil, err
	}

	zap.S().Infow("report created",
		"reportId", report.ID,
		"category", category,
		"tier", report.StorageTier,
		"area", authority.Area,
	)

	return &Response{
		Intent:   intent,
		Report:   &report,
		Degraded: verdict.IssuePresent == nil || report.StorageTier == models.TierLocal,
	}, nil
}

// resolveAuthority prefers the model's area hint, then the resolved
// location's area, then the documented fallback contact
func (o *Orchestrator) resolveAuthority(loc *models.Location, areaHint string) models.Authority {
	if a := o.Authorities.FindByArea(areaHint); a != nil {
		return *a
	}
	if loc != nil {
		if a := o.Authorities.FindByArea(loc.AreaName); a != nil {
			return *a
		}
	}
	return o.Authorities.Fallback()
}

// GetReport fetches a report from whichever tier owns the id
func (o *Orchestrator) GetReport(ctx context.Context, id string) (*models.Report, error) {
	return o.Reports.Get(ctx, id)
}

// UpdateReportStatus applies an explicit status change
func (o *Orchestrator) UpdateReportStatus(ctx context.Context, id string, status models.Status, notes string) error {
	return o.Reports.UpdateStatus(ctx, id, status, notes)
}
