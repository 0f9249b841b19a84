package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
	"github.com/dealdesk/dealdesk-backend/internal/usecase"
)

type MockWebhookLogRepository struct {
	mock.Mock
}

func (m *MockWebhookLogRepository) Insert(ctx context.Context, l *entity.WebhookLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockWebhookLogRepository) ListRecent(ctx context.Context, limit int) ([]*entity.WebhookLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.WebhookLog), args.Error(1)
}

func newWebhookHandler(dealRepo *MockDealRepository, logRepo *MockWebhookLogRepository, secret string) *WebhookHandler {
	audit := usecase.NewAuditTrail(logRepo, nil)
	ingestUC := usecase.NewIngestFormSubmissionUseCase(dealRepo, audit)
	return NewWebhookHandler(ingestUC, audit, logRepo, secret)
}

func TestExternalWebhookRejectsWrongSecret(t *testing.T) {
	dealRepo := new(MockDealRepository)
	logRepo := new(MockWebhookLogRepository)
	handler := newWebhookHandler(dealRepo, logRepo, "topsecret")

	body := []byte(`{"event": "reply_received"}`)

	req := httptest.NewRequest("POST", "/api/webhook/outreach-external", bytes.NewReader(body))
	req.Header.Set("X-Webhook-Secret", "wrong")
	w := httptest.NewRecorder()

	handler.HandleExternal(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	logRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestExternalWebhookRejectsMissingSecret(t *testing.T) {
	dealRepo := new(MockDealRepository)
	logRepo := new(MockWebhookLogRepository)
	handler := newWebhookHandler(dealRepo, logRepo, "topsecret")

	req := httptest.NewRequest("POST", "/api/webhook/outreach-external", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()

	handler.HandleExternal(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	logRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestExternalWebhookOpenWhenSecretUnset(t *testing.T) {
	dealRepo := new(MockDealRepository)
	logRepo := new(MockWebhookLogRepository)
	logRepo.On("Insert", mock.Anything, mock.MatchedBy(func(l *entity.WebhookLog) bool {
		return l.Action == entity.ActionOutreachExternal && l.TriggeredBy == entity.TriggeredByExternal
	})).Return(nil)

	handler := newWebhookHandler(dealRepo, logRepo, "")

	body := []byte(`{"deal_id": "deal-9", "event": "reply_received", "details": {"channel": "email"}}`)

	req := httptest.NewRequest("POST", "/api/webhook/outreach-external", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleExternal(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	json.NewDecoder(w.Body).Decode(&response)
	assert.Equal(t, "deal-9", response["deal_id"])
	assert.Equal(t, "reply_received", response["event"])
	assert.NotEmpty(t, response["received_at"])

	logRepo.AssertCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestExternalWebhookLogFailureFailsRequest(t *testing.T) {
	dealRepo := new(MockDealRepository)
	logRepo := new(MockWebhookLogRepository)
	logRepo.On("Insert", mock.Anything, mock.Anything).Return(assert.AnError)

	handler := newWebhookHandler(dealRepo, logRepo, "")

	req := httptest.NewRequest("POST", "/api/webhook/outreach-external", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()

	handler.HandleExternal(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGoogleFormForcesSourceAndStage(t *testing.T) {
	dealRepo := new(MockDealRepository)
	dealRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *entity.Deal) bool {
		return d.Source == "google_form" && d.Stage == "submitted"
	})).Return(nil)

	logRepo := new(MockWebhookLogRepository)
	logRepo.On("Insert", mock.Anything, mock.MatchedBy(func(l *entity.WebhookLog) bool {
		return l.Action == entity.ActionFormSubmission && l.DealID != nil
	})).Return(nil)

	handler := newWebhookHandler(dealRepo, logRepo, "")

	body := []byte(`{"business_name": "Acme Forms", "contact_email": "form@x.com"}`)

	req := httptest.NewRequest("POST", "/api/webhook/google-form", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleGoogleForm(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	dealRepo.AssertExpectations(t)
	logRepo.AssertExpectations(t)
}

func TestGoogleFormMissingBusinessName(t *testing.T) {
	dealRepo := new(MockDealRepository)
	logRepo := new(MockWebhookLogRepository)
	handler := newWebhookHandler(dealRepo, logRepo, "")

	body := []byte(`{"contact_email": "form@x.com"}`)

	req := httptest.NewRequest("POST", "/api/webhook/google-form", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleGoogleForm(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	dealRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWebhookListCapsAtFifty(t *testing.T) {
	dealRepo := new(MockDealRepository)
	logRepo := new(MockWebhookLogRepository)
	logRepo.On("ListRecent", mock.Anything, 50).Return([]*entity.WebhookLog{
		{ID: "log-1", Action: entity.ActionSendOutreach},
	}, nil)

	handler := newWebhookHandler(dealRepo, logRepo, "")

	req := httptest.NewRequest("GET", "/api/webhooks", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	logRepo.AssertCalled(t, "ListRecent", mock.Anything, 50)
}
