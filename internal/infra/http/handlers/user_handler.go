package handlers

import (
	"net/http"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
)

type UserHandler struct {
	ProfileRepo entity.ProfileRepositoryInterface
}

func NewUserHandler(profileRepo entity.ProfileRepositoryInterface) *UserHandler {
	return &UserHandler{ProfileRepo: profileRepo}
}

// HandleList returns every profile. Admin gating happens in middleware.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.ProfileRepo.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, profiles)
}
