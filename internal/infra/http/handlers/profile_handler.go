package handlers

import (
	"net/http"

	"github.com/dealdesk/dealdesk-backend/internal/infra/http/middleware"
	"github.com/dealdesk/dealdesk-backend/internal/usecase"
)

type ProfileHandler struct {
	ProfileUC *usecase.FetchOrCreateProfileUseCase
}

func NewProfileHandler(profileUC *usecase.FetchOrCreateProfileUseCase) *ProfileHandler {
	return &ProfileHandler{ProfileUC: profileUC}
}

// HandleGet never fails for an authenticated caller: persistence trouble
// degrades to an ephemeral default profile, flagged in the response.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing authorization header")
		return
	}

	profile, persisted := h.ProfileUC.Execute(r.Context(), identity.ID, identity.Email)

	respondJSON(w, http.StatusOK, map[string]any{
		"profile":   profile,
		"persisted": persisted,
	})
}
