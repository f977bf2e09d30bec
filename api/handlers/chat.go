package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nammacity/city-buddy-api/agents"
	"github.com/nammacity/city-buddy-api/config"
	"github.com/nammacity/city-buddy-api/orchestrator"
	"github.com/nammacity/city-buddy-api/storage"
)

// Chat exposes the conversational endpoints
type Chat struct {
	O *orchestrator.Orchestrator
}

// ChatRequest is the /chat payload
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatHandler takes a plain text message and routes it through the
// intent dispatcher, no image involved.
func (c Chat) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Message == "" {
		config.ErrorStatus("message is required", http.StatusBadRequest, w, errors.New("empty message"))
		return
	}

	resp, err := c.O.Process(r.Context(), orchestrator.Request{Query: req.Message})
	if err != nil {
		config.ErrorStatus("failed to process message", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, resp)
}

// AnalyzeHandler takes a multipart form with a query and an optional
// image and runs the same dispatch as chat, so photo-first users can
// skip picking a category.
func (c Chat) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxBlobSize+1<<20)
	if err := r.ParseMultipartForm(storage.MaxBlobSize); err != nil {
		writeMultipartError(w, err)
		return
	}

	query := r.FormValue("query")
	image, err := readImageFile(r)
	if err != nil {
		config.ErrorStatus("failed to read image", http.StatusBadRequest, w, err)
		return
	}
	if query == "" && image == nil {
		config.ErrorStatus("query or image is required", http.StatusBadRequest, w, errors.New("empty request"))
		return
	}

	resp, err := c.O.Process(r.Context(), orchestrator.Request{Query: query, Image: image})
	if err != nil {
		writeProcessError(w, err)
		return
	}
	writeJSON(w, resp)
}

// readImageFile pulls the optional "image" part out of a multipart
// form. A missing part is not an error, the handlers decide whether
// an image is required.
func readImageFile(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// writeMultipartError distinguishes an oversized body from a
// malformed one.
func writeMultipartError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		config.ErrorStatus("image exceeds the 16MB limit", http.StatusRequestEntityTooLarge, w, err)
		return
	}
	config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
}

// writeProcessError maps the validation sentinels onto 4xx codes,
// anything else is a 500.
func writeProcessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrBlobTooLarge):
		config.ErrorStatus("image exceeds the 16MB limit", http.StatusRequestEntityTooLarge, w, err)
	case errors.Is(err, storage.ErrEmptyBlob),
		errors.Is(err, storage.ErrUnsupportedFormat),
		errors.Is(err, agents.ErrImageRequired):
		config.ErrorStatus("invalid image", http.StatusBadRequest, w, err)
	default:
		config.ErrorStatus("failed to process request", http.StatusInternalServerError, w, err)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
