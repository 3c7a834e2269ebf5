package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amaumene/cinefront/internal/scheduler"
	"github.com/sirupsen/logrus"
)

// StatusSource reports the last backend health check
type StatusSource interface {
	Status() scheduler.BackendStatus
}

// StatusHandler handles status requests
type StatusHandler struct {
	source     StatusSource
	backendURL string
	logger     *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(source StatusSource, backendURL string, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		source:     source,
		backendURL: backendURL,
		logger:     logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	BackendURL string                  `json:"backend_url"`
	Checked    bool                    `json:"checked"`
	Backend    scheduler.BackendStatus `json:"backend"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := h.source.Status()
	response := StatusResponse{
		BackendURL: h.backendURL,
		Checked:    !status.CheckedAt.IsZero(),
		Backend:    status,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.WithError(err).Error("Failed to encode status response")
	}
}
