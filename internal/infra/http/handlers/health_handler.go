package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/dealdesk/dealdesk-backend/internal/config"
)

type HealthHandler struct {
	DB        *sql.DB
	Cfg       config.Config
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, cfg config.Config) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		Cfg:       cfg,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.Cfg.Mail != nil {
		deps["mail"] = "configured"
	} else {
		deps["mail"] = "not configured"
	}

	if h.Cfg.WebhookSecret != "" {
		deps["webhook_secret"] = "configured"
	} else {
		deps["webhook_secret"] = "not configured"
	}

	if h.Cfg.AMQPURL != "" {
		deps["audit_fanout"] = "configured"
	} else {
		deps["audit_fanout"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, response)
}
