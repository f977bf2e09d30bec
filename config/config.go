package config

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/logging"
	"github.com/nammacity/city-buddy-api/models"
)

// Config holds the project config values
type Config struct {
	Port           string
	BaseURL        string
	URL            string
	DatabaseName   string
	GeminiAPIKey   string
	GeminiBaseURL  string
	GeminiModel    string
	CloudinaryURL  string
	UploadFolder   string
	AuthoritiesCSV string
	EventsCSV      string
	FallbackEmail  string
	FallbackPhone  string
}

// New sets up all config related services
func New() *Config {

	// .env is optional; deployed environments set real env vars
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logging.New()

	return &Config{
		Port:           envOr("PORT", "5500"),
		BaseURL:        os.Getenv("BASE_URL"),
		URL:            os.Getenv("DB_URI"),
		DatabaseName:   envOr("DB_NAME", "citybuddy"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:  envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:    envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		UploadFolder:   envOr("UPLOAD_FOLDER", "uploads"),
		AuthoritiesCSV: envOr("AUTHORITIES_CSV", "data/authorities.csv"),
		EventsCSV:      envOr("EVENTS_CSV", "data/events.csv"),
		FallbackEmail:  envOr("FALLBACK_EMAIL", "info@bbmp.gov.in"),
		FallbackPhone:  envOr("FALLBACK_PHONE", "080-22660000"),
	}

}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	b, _ := json.Marshal(models.ErrorMessageResponse{
		Response: models.MessageError{Message: message, Error: err.Error()},
	})
	w.WriteHeader(httpStatusCode)
	w.Write(b)
	return
}
