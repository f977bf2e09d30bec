package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nammacity/city-buddy-api/agents"
	"github.com/nammacity/city-buddy-api/databases"
	"github.com/nammacity/city-buddy-api/directory"
	"github.com/nammacity/city-buddy-api/gemini"
	"github.com/nammacity/city-buddy-api/geo"
	"github.com/nammacity/city-buddy-api/models"
	"github.com/nammacity/city-buddy-api/orchestrator"
	"github.com/nammacity/city-buddy-api/storage"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// scriptedAI serves one canned model answer per call, in order
func scriptedAI(t *testing.T, answers ...string) *gemini.Client {
	t.Helper()
	call := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if call >= len(answers) {
			http.Error(w, "unscripted call", http.StatusInternalServerError)
			return
		}
		text, _ := json.Marshal(answers[call])
		call++
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":`+string(text)+`}]}}]}`)
	}))
	t.Cleanup(server.Close)
	return gemini.NewClient(server.URL, "test-key", "gemini-2.5-flash")
}

func newOrchestrator(t *testing.T, ai *gemini.Client) *orchestrator.Orchestrator {
	t.Helper()
	authorities := directory.NewAuthorityDirectory([]directory.AuthorityRecord{
		{
			Authority: models.Authority{
				Area:        "Indiranagar",
				Name:        "Suresh Kumar",
				Designation: "Executive Engineer",
				Email:       "ee.indiranagar@bbmp.gov.in",
			},
			Latitude:    12.9719,
			Longitude:   77.6412,
			HasCentroid: true,
		},
	})

	blobs, err := storage.NewTieredBlobStore("", t.TempDir())
	assert.NoError(t, err)

	return &orchestrator.Orchestrator{
		AI:          ai,
		Agents:      agents.NewRegistry(ai, directory.NewEventDirectory(nil)),
		Locator:     geo.NewResolver(authorities),
		Authorities: authorities,
		Reports:     databases.NewReportStore(nil, databases.NewLocalReportStore()),
		Blobs:       blobs,
	}
}

// multipartBody builds a form with optional image bytes and extra fields
func multipartBody(t *testing.T, image []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		fw, err := w.CreateFormFile("image", "photo.png")
		assert.NoError(t, err)
		_, err = fw.Write(image)
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}
