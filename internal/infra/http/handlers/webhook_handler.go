package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
	"github.com/dealdesk/dealdesk-backend/internal/usecase"
)

const webhookLogLimit = 50

// WebhookHandler serves the unauthenticated webhook entry points and the
// audit log listing.
type WebhookHandler struct {
	IngestUC *usecase.IngestFormSubmissionUseCase
	Audit    *usecase.AuditTrail
	LogRepo  entity.WebhookLogRepositoryInterface

	// Secret guards the external endpoint. Empty skips the check entirely.
	Secret string
}

func NewWebhookHandler(ingestUC *usecase.IngestFormSubmissionUseCase, audit *usecase.AuditTrail, logRepo entity.WebhookLogRepositoryInterface, secret string) *WebhookHandler {
	return &WebhookHandler{
		IngestUC: ingestUC,
		Audit:    audit,
		LogRepo:  logRepo,
		Secret:   secret,
	}
}

// HandleGoogleForm ingests a form submission as a new deal. Source and stage
// are forced server-side.
func (h *WebhookHandler) HandleGoogleForm(w http.ResponseWriter, r *http.Request) {
	var input usecase.FormSubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	deal, err := h.IngestUC.Execute(r.Context(), input)
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Form submission received",
		"deal":    deal,
	})
}

type externalEventRequest struct {
	DealID  string         `json:"deal_id"`
	Event   string         `json:"event"`
	Details map[string]any `json:"details"`
}

// HandleExternal logs and echoes an automation event. No deal existence check
// is performed here.
func (h *WebhookHandler) HandleExternal(w http.ResponseWriter, r *http.Request) {
	if h.Secret != "" {
		provided := r.Header.Get("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.Secret)) != 1 {
			respondError(w, http.StatusUnauthorized, "invalid webhook secret")
			return
		}
	}

	var req externalEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var dealID *string
	if req.DealID != "" {
		dealID = &req.DealID
	}

	details := req.Details
	if details == nil {
		details = map[string]any{}
	}
	if req.Event != "" {
		details["event"] = req.Event
	}

	entry := entity.NewWebhookLog(dealID, entity.ActionOutreachExternal, entity.TriggeredByExternal, "received", details)

	// The log row is the primary side effect here, so its failure fails the request.
	if err := h.Audit.Record(r.Context(), entry); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "External outreach event logged",
		"deal_id":     req.DealID,
		"event":       req.Event,
		"details":     req.Details,
		"received_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleList returns the newest entries joined with their deals.
func (h *WebhookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	logs, err := h.LogRepo.ListRecent(r.Context(), webhookLogLimit)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, logs)
}
