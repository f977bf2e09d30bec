package models

// HealthCheckResponse returns the health check response, yay
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// ServiceInfoResponse describes the service and its storage mode
type ServiceInfoResponse struct {
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Endpoints    map[string]string `json:"endpoints"`
	ImageStorage string            `json:"imageStorage"`
	ReportStore  string            `json:"reportStore"`
}

// StatusUpdateResponse confirms a report status change
type StatusUpdateResponse struct {
	ReportID  string `json:"reportId"`
	NewStatus Status `json:"newStatus"`
}
