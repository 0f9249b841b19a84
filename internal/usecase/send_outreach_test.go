package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
	"github.com/dealdesk/dealdesk-backend/internal/infra/integration/outbound"
)

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) List(ctx context.Context) ([]*entity.Deal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Deal), args.Error(1)
}

func (m *MockDealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deal), args.Error(1)
}

func (m *MockDealRepository) Create(ctx context.Context, d *entity.Deal) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDealRepository) Update(ctx context.Context, id string, patch *entity.DealPatch) (*entity.Deal, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deal), args.Error(1)
}

func (m *MockDealRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOutreach(to, businessName, industry, contactName string, fundingAmount float64) error {
	args := m.Called(to, businessName, industry, contactName, fundingAmount)
	return args.Error(0)
}

type MockForwarder struct {
	mock.Mock
}

func (m *MockForwarder) Forward(ctx context.Context, url string, payload outbound.DealPayload) error {
	args := m.Called(ctx, url, payload)
	return args.Error(0)
}

func sampleDeal() *entity.Deal {
	return &entity.Deal{
		ID:                     "deal-1",
		BusinessName:           "Acme",
		ContactName:            "Ana",
		ContactEmail:           "ana@acme.com",
		Industry:               "retail",
		FundingAmountRequested: 50000,
		Stage:                  "submitted",
		Source:                 "api",
	}
}

func TestSendOutreachWithoutMailer(t *testing.T) {
	deals := new(MockDealRepository)
	deals.On("FindByID", mock.Anything, "deal-1").Return(sampleDeal(), nil)

	logs := new(MockWebhookLogRepository)

	uc := NewSendOutreachUseCase(deals, nil, NewAuditTrail(logs, nil))

	_, err := uc.Execute(context.Background(), "deal-1", "ops@dealdesk.io")

	assert.Error(t, err)
	assert.Equal(t, KindUnavailable, KindOf(err))
	logs.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSendOutreachDealNotFound(t *testing.T) {
	deals := new(MockDealRepository)
	deals.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrDealNotFound)

	email := new(MockEmailService)
	logs := new(MockWebhookLogRepository)

	uc := NewSendOutreachUseCase(deals, email, NewAuditTrail(logs, nil))

	_, err := uc.Execute(context.Background(), "missing", "ops@dealdesk.io")

	assert.Equal(t, KindNotFound, KindOf(err))
	email.AssertNotCalled(t, "SendOutreach", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendOutreachRelayFailureSkipsLog(t *testing.T) {
	deals := new(MockDealRepository)
	deals.On("FindByID", mock.Anything, "deal-1").Return(sampleDeal(), nil)

	email := new(MockEmailService)
	email.On("SendOutreach", "ana@acme.com", "Acme", "retail", "Ana", float64(50000)).
		Return(errors.New("smtp connection refused"))

	logs := new(MockWebhookLogRepository)

	uc := NewSendOutreachUseCase(deals, email, NewAuditTrail(logs, nil))

	_, err := uc.Execute(context.Background(), "deal-1", "ops@dealdesk.io")

	assert.Equal(t, KindUpstream, KindOf(err))
	logs.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSendOutreachSuccessWritesLog(t *testing.T) {
	deals := new(MockDealRepository)
	deals.On("FindByID", mock.Anything, "deal-1").Return(sampleDeal(), nil)

	email := new(MockEmailService)
	email.On("SendOutreach", "ana@acme.com", "Acme", "retail", "Ana", float64(50000)).Return(nil)

	logs := new(MockWebhookLogRepository)
	logs.On("Insert", mock.Anything, mock.MatchedBy(func(l *entity.WebhookLog) bool {
		return l.Action == entity.ActionSendOutreach &&
			l.TriggeredBy == "ops@dealdesk.io" &&
			l.DealID != nil && *l.DealID == "deal-1"
	})).Return(nil)

	uc := NewSendOutreachUseCase(deals, email, NewAuditTrail(logs, nil))

	deal, err := uc.Execute(context.Background(), "deal-1", "ops@dealdesk.io")

	assert.NoError(t, err)
	assert.Equal(t, "deal-1", deal.ID)
	logs.AssertExpectations(t)
}

func TestSendOutreachLogFailureStillSucceeds(t *testing.T) {
	deals := new(MockDealRepository)
	deals.On("FindByID", mock.Anything, "deal-1").Return(sampleDeal(), nil)

	email := new(MockEmailService)
	email.On("SendOutreach", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	logs := new(MockWebhookLogRepository)
	logs.On("Insert", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	uc := NewSendOutreachUseCase(deals, email, NewAuditTrail(logs, nil))

	_, err := uc.Execute(context.Background(), "deal-1", "ops@dealdesk.io")

	assert.NoError(t, err)
}
