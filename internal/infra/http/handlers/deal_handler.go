package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
)

type DealHandler struct {
	DealRepo entity.DealRepositoryInterface
}

func NewDealHandler(dealRepo entity.DealRepositoryInterface) *DealHandler {
	return &DealHandler{DealRepo: dealRepo}
}

// CreateDealRequest is the allow-listed field set. Unknown fields are rejected
// instead of being passed through to storage.
type CreateDealRequest struct {
	BusinessName           string  `json:"business_name"`
	ContactName            string  `json:"contact_name"`
	ContactEmail           string  `json:"contact_email"`
	Industry               string  `json:"industry"`
	FundingAmountRequested float64 `json:"funding_amount_requested"`
	Description            string  `json:"description"`
	WebsiteURL             string  `json:"website_url"`
	Stage                  string  `json:"stage"`
	Source                 string  `json:"source"`
}

func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	deals, err := h.DealRepo.List(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, deals)
}

func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDealRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	deal, err := entity.NewDeal(
		req.BusinessName,
		req.ContactName,
		req.ContactEmail,
		req.Industry,
		req.Description,
		req.WebsiteURL,
		req.Stage,
		req.Source,
		req.FundingAmountRequested,
	)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.DealRepo.Create(r.Context(), deal); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, deal)
}

func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing deal id")
		return
	}

	var patch entity.DealPatch

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	deal, err := h.DealRepo.Update(r.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, entity.ErrDealNotFound) {
			respondError(w, http.StatusNotFound, "deal not found: "+id)
			return
		}
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, deal)
}

// Delete is idempotent: the fixed success message comes back whether or not a
// row actually existed.
func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing deal id")
		return
	}

	if err := h.DealRepo.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Deal deleted successfully"})
}
