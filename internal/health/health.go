// Package health provides the health-check and ping http handlers.
package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simplesurance/ghreceiver/internal/logfields"
)

const loggerName = "health"

// ServiceName is reported as service in health responses.
const ServiceName = "ghreceiver"

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// Response is the body of a health-check response.
type Response struct {
	Status           string          `json:"status"`
	Service          string          `json:"service"`
	Version          string          `json:"version"`
	Timestamp        string          `json:"timestamp"`
	UptimeSeconds    int64           `json:"uptime_seconds"`
	SecretConfigured bool            `json:"secret_configured"`
	SupportedEvents  SupportedEvents `json:"supported_events"`
}

type SupportedEvents struct {
	Count  int      `json:"count"`
	Events []string `json:"events"`
}

// PingResponse is the body of a ping response.
type PingResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// Handler serves the health-check and ping endpoints.
type Handler struct {
	logger           *zap.Logger
	version          string
	startTime        time.Time
	secretConfigured func() bool
	supportedEvents  []string
	now              func() time.Time
}

// NewHandler returns a Handler.
// secretConfigured is called on every health-check request, the service is
// reported as unhealthy when it returns false.
func NewHandler(version string, secretConfigured func() bool, supportedEvents []string) *Handler {
	return &Handler{
		logger:           zap.L().Named(loggerName),
		version:          version,
		startTime:        time.Now(),
		secretConfigured: secretConfigured,
		supportedEvents:  supportedEvents,
		now:              time.Now,
	}
}

func (h *Handler) HealthHandler(resp http.ResponseWriter, req *http.Request) {
	now := h.now()

	result := Response{
		Status:           statusHealthy,
		Service:          ServiceName,
		Version:          h.version,
		Timestamp:        now.UTC().Format(time.RFC3339),
		UptimeSeconds:    int64(now.Sub(h.startTime).Seconds()),
		SecretConfigured: h.secretConfigured(),
		SupportedEvents: SupportedEvents{
			Count:  len(h.supportedEvents),
			Events: h.supportedEvents,
		},
	}

	status := http.StatusOK
	if !result.SecretConfigured {
		result.Status = statusUnhealthy
		status = http.StatusServiceUnavailable

		h.logger.Warn(
			"health check failed, github webhook secret is not configured",
			logfields.Event("health_check_failed"),
		)
	} else {
		h.logger.Debug("health check passed", logfields.Event("health_check_passed"))
	}

	h.writeJSON(resp, status, &result)
}

func (h *Handler) PingHandler(resp http.ResponseWriter, req *http.Request) {
	reqID := middleware.GetReqID(req.Context())
	if reqID == "" {
		reqID = uuid.NewString()
	}

	h.writeJSON(resp, http.StatusOK, &PingResponse{
		Message:   "pong",
		Version:   h.version,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		RequestID: reqID,
	})
}

func (h *Handler) writeJSON(resp http.ResponseWriter, status int, body any) {
	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(status)

	if err := json.NewEncoder(resp).Encode(body); err != nil {
		h.logger.Warn(
			"writing http response failed",
			logfields.Event("health_http_response_write_failed"),
			zap.Error(err),
		)
	}
}
