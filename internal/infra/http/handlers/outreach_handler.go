package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dealdesk/dealdesk-backend/internal/infra/http/middleware"
	"github.com/dealdesk/dealdesk-backend/internal/usecase"
)

type OutreachHandler struct {
	SendUC    *usecase.SendOutreachUseCase
	TriggerUC *usecase.TriggerOutreachUseCase
}

func NewOutreachHandler(sendUC *usecase.SendOutreachUseCase, triggerUC *usecase.TriggerOutreachUseCase) *OutreachHandler {
	return &OutreachHandler{SendUC: sendUC, TriggerUC: triggerUC}
}

type sendOutreachRequest struct {
	DealID string `json:"deal_id"`
}

type triggerOutreachRequest struct {
	DealID     string `json:"deal_id"`
	WebhookURL string `json:"webhook_url"`
}

func (h *OutreachHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendOutreachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DealID == "" {
		respondError(w, http.StatusBadRequest, "deal_id is required")
		return
	}

	identity, _ := middleware.IdentityFrom(r.Context())

	deal, err := h.SendUC.Execute(r.Context(), req.DealID, identity.Email)
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":   "Outreach email sent",
		"deal_id":   deal.ID,
		"recipient": deal.ContactEmail,
	})
}

func (h *OutreachHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	var req triggerOutreachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DealID == "" {
		respondError(w, http.StatusBadRequest, "deal_id is required")
		return
	}

	identity, _ := middleware.IdentityFrom(r.Context())

	deal, err := h.TriggerUC.Execute(r.Context(), req.DealID, req.WebhookURL, identity.Email)
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	forwarded := req.WebhookURL != ""

	respondJSON(w, http.StatusOK, map[string]any{
		"message":   "Outreach triggered",
		"deal_id":   deal.ID,
		"forwarded": forwarded,
	})
}
