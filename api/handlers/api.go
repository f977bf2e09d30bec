package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/agents"
	"github.com/nammacity/city-buddy-api/api"
	"github.com/nammacity/city-buddy-api/api/scheduler"
	"github.com/nammacity/city-buddy-api/config"
	"github.com/nammacity/city-buddy-api/databases"
	"github.com/nammacity/city-buddy-api/directory"
	"github.com/nammacity/city-buddy-api/gemini"
	"github.com/nammacity/city-buddy-api/geo"
	"github.com/nammacity/city-buddy-api/models"
	"github.com/nammacity/city-buddy-api/orchestrator"
	"github.com/nammacity/city-buddy-api/storage"
)

// App stores the router and the wired core, so it can be reused
type App struct {
	Router       *mux.Router
	Config       config.Config
	Orchestrator *orchestrator.Orchestrator
	Scheduler    *scheduler.Scheduler

	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	c := Chat{O: a.Orchestrator}
	rep := Report{O: a.Orchestrator}
	ws := Socket{O: a.Orchestrator}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.HandleFunc("/", a.serviceInfoHandler).Methods("GET")

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	timeout := api.TimeoutMiddleware(api.RequestTimeout)

	apiCreate.Handle("/chat", timeout(http.HandlerFunc(c.ChatHandler))).Methods("POST")
	apiCreate.Handle("/analyze", timeout(http.HandlerFunc(c.AnalyzeHandler))).Methods("POST")

	apiCreate.Handle("/report/{category}", timeout(http.HandlerFunc(rep.CreateReportHandler))).Methods("POST")
	apiCreate.Handle("/report/{report_id}", http.HandlerFunc(rep.ReportByIDHandler)).Methods("GET")
	apiCreate.Handle("/report/{report_id}/status", http.HandlerFunc(rep.UpdateReportStatusHandler)).Methods("PUT")

	apiCreate.Handle("/ws/chat", http.HandlerFunc(ws.ChatSocketHandler)).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router.
// Unlike the stores it wires, Initialize itself never fails hard on a missing
// remote tier: the product promise is a tracking id even when backing
// services are down.
func (a *App) Initialize() error {
	local := databases.NewLocalReportStore()
	var remote databases.ReportDatabase

	if a.Config.URL != "" {
		client, err := databases.NewClient(&a.Config)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err = client.Connect(ctx)
			if err == nil {
				err = client.Ping(ctx)
			}
			cancel()
		}
		if err != nil {
			zap.S().Warnw("document store unavailable, reports will persist on the local tier", "error", err)
		} else {
			a.dbHelper = databases.NewDatabase(&a.Config, client)
			remote = databases.NewReportDatabase(a.dbHelper)
			zap.S().Info("city-buddy-api has connected to the document store")
		}
	} else {
		zap.S().Warn("DB_URI not set, reports will persist on the local tier")
	}

	reports := databases.NewReportStore(remote, local)

	blobs, err := storage.NewTieredBlobStore(a.Config.CloudinaryURL, a.Config.UploadFolder)
	if err != nil {
		return err
	}

	authorities := loadAuthorities(a.Config.AuthoritiesCSV)
	authorities.SetFallbackContact(a.Config.FallbackEmail, a.Config.FallbackPhone)
	events := loadEvents(a.Config.EventsCSV)

	ai := gemini.NewClient(a.Config.GeminiBaseURL, a.Config.GeminiAPIKey, a.Config.GeminiModel)

	a.Orchestrator = &orchestrator.Orchestrator{
		AI:          ai,
		Agents:      agents.NewRegistry(ai, events),
		Locator:     geo.NewResolver(authorities),
		Authorities: authorities,
		Reports:     reports,
		Blobs:       blobs,
	}

	a.Scheduler = scheduler.NewScheduler(reports)
	a.Scheduler.Start()

	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func loadAuthorities(path string) *directory.AuthorityDirectory {
	dir, err := directory.LoadAuthorities(path)
	if err != nil {
		zap.S().Warnw("authority directory unavailable, all reports will use the fallback contact",
			"path", path, "error", err)
		return directory.NewAuthorityDirectory(nil)
	}
	return dir
}

func loadEvents(path string) *directory.EventDirectory {
	dir, err := directory.LoadEvents(path)
	if err != nil {
		zap.S().Warnw("event directory unavailable, event search will return no results",
			"path", path, "error", err)
		return directory.NewEventDirectory(nil)
	}
	return dir
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

func (a *App) serviceInfoHandler(w http.ResponseWriter, r *http.Request) {
	imageStorage := "local_fallback"
	reportStore := "local_fallback"
	if a.Orchestrator != nil {
		if bs, ok := a.Orchestrator.Blobs.(*storage.TieredBlobStore); ok && bs.RemoteAvailable() {
			imageStorage = "cloudinary"
		}
		if a.Orchestrator.Reports.RemoteAvailable() {
			reportStore = "document_store"
		}
	}

	b, err := json.Marshal(models.ServiceInfoResponse{
		Service:     "city-buddy-api",
		Version:     "1.0.0",
		Description: "AI-powered city services assistant for Bengaluru",
		Endpoints: map[string]string{
			"POST /api/v1/chat":                      "General conversation endpoint",
			"POST /api/v1/analyze":                   "Analyze text query with optional image",
			"POST /api/v1/report/{category}":         "Report waste, road or electrical issues with image",
			"GET /api/v1/report/{id}":                "Retrieve a specific report",
			"PUT /api/v1/report/{id}/status":         "Update report status",
			"GET /api/v1/ws/chat":                    "Websocket chat",
			"GET /health":                            "Service health check",
		},
		ImageStorage: imageStorage,
		ReportStore:  reportStore,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
