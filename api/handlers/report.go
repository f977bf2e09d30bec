package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nammacity/city-buddy-api/config"
	"github.com/nammacity/city-buddy-api/databases"
	"github.com/nammacity/city-buddy-api/models"
	"github.com/nammacity/city-buddy-api/orchestrator"
	"github.com/nammacity/city-buddy-api/storage"
)

// Report exposes the issue report endpoints
type Report struct {
	O *orchestrator.Orchestrator
}

// statusUpdateRequest is the PUT /report/{id}/status payload
type statusUpdateRequest struct {
	Status models.Status `json:"status"`
	Notes  string        `json:"notes"`
}

// CreateReportHandler files a report for a fixed category, the image
// is mandatory here because every dedicated report flow starts from a
// photo.
func (rp Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	category := models.Category(mux.Vars(r)["category"])
	if !models.ValidCategory(category) {
		config.ErrorStatus("unknown report category", http.StatusBadRequest, w, fmt.Errorf("category %q", category))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxBlobSize+1<<20)
	if err := r.ParseMultipartForm(storage.MaxBlobSize); err != nil {
		writeMultipartError(w, err)
		return
	}

	image, err := readImageFile(r)
	if err != nil {
		config.ErrorStatus("failed to read image", http.StatusBadRequest, w, err)
		return
	}
	if image == nil {
		config.ErrorStatus("image file is required", http.StatusBadRequest, w, errors.New("missing image part"))
		return
	}

	resp, err := rp.O.Process(r.Context(), orchestrator.Request{
		Query:    r.FormValue("description"),
		Image:    image,
		Category: category,
	})
	if err != nil {
		writeProcessError(w, err)
		return
	}
	writeJSON(w, resp)
}

// ReportByIDHandler returns a single report by its tracking id
func (rp Report) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["report_id"]

	report, err := rp.O.GetReport(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, databases.ErrReportNotFound) {
			config.ErrorStatus("report not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get report by ID", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, report)
}

// UpdateReportStatusHandler moves a report through its lifecycle
func (rp Report) UpdateReportStatusHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["report_id"]

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !models.ValidStatus(req.Status) {
		config.ErrorStatus("unknown status", http.StatusBadRequest, w, fmt.Errorf("status %q", req.Status))
		return
	}

	if err := rp.O.UpdateReportStatus(r.Context(), reportID, req.Status, req.Notes); err != nil {
		if errors.Is(err, databases.ErrReportNotFound) {
			config.ErrorStatus("report not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update report status", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, models.StatusUpdateResponse{ReportID: reportID, NewStatus: req.Status})
}
