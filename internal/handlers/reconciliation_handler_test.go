package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"bank-reconciliation-backend/internal/models"
	service "bank-reconciliation-backend/internal/services/reconciliation"
)

// stubStore backs the handler tests with a single transaction, one
// payable and one match.
type stubStore struct {
	tx       *models.BankTransaction
	supplier *models.SupplierInvoice
	match    *models.ReconciliationMatch
	rules    []models.ReconciliationRule
}

func (s *stubStore) ActiveRules(uuid.UUID) ([]models.ReconciliationRule, error) {
	return s.rules, nil
}

func (s *stubStore) FindOpenInvoices(uuid.UUID, time.Time, time.Time) ([]models.Invoice, error) {
	return nil, nil
}

func (s *stubStore) FindOpenSupplierInvoices(uuid.UUID) ([]models.SupplierInvoice, error) {
	if s.supplier == nil {
		return nil, nil
	}
	return []models.SupplierInvoice{*s.supplier}, nil
}

func (s *stubStore) FindExpenses(uuid.UUID, time.Time, time.Time) ([]models.Expense, error) {
	return nil, nil
}

func (s *stubStore) GetTransaction(id uuid.UUID) (*models.BankTransaction, error) {
	if s.tx == nil || s.tx.ID != id {
		return nil, errors.New("record not found")
	}
	copied := *s.tx
	return &copied, nil
}

func (s *stubStore) UpdateTransactionReconciliation(id uuid.UUID, status string, score float64) error {
	if s.tx != nil && s.tx.ID == id {
		s.tx.ReconciliationStatus = status
		s.tx.ReconciliationScore = score
	}
	return nil
}

func (s *stubStore) UpdateTransactionExtraction(*models.BankTransaction) error { return nil }

func (s *stubStore) ListTransactionsByOrg(uuid.UUID) ([]models.BankTransaction, error) {
	if s.tx == nil {
		return nil, nil
	}
	return []models.BankTransaction{*s.tx}, nil
}

func (s *stubStore) CreateMatch(m *models.ReconciliationMatch) error {
	copied := *m
	s.match = &copied
	return nil
}

func (s *stubStore) GetMatch(id uuid.UUID) (*models.ReconciliationMatch, error) {
	if s.match == nil || s.match.ID != id {
		return nil, errors.New("record not found")
	}
	copied := *s.match
	return &copied, nil
}

func (s *stubStore) UpdateMatch(m *models.ReconciliationMatch) error {
	copied := *m
	s.match = &copied
	return nil
}

func (s *stubStore) ListMatchesForTransaction(txID uuid.UUID) ([]models.ReconciliationMatch, error) {
	if s.match != nil && s.match.TransactionID == txID {
		return []models.ReconciliationMatch{*s.match}, nil
	}
	return nil, nil
}

func (s *stubStore) GetInvoice(uuid.UUID) (*models.Invoice, error) {
	return nil, errors.New("record not found")
}

func (s *stubStore) UpdateInvoicePayment(*models.Invoice) error { return nil }

func (s *stubStore) CreatePayment(*models.Payment) error { return nil }

func (s *stubStore) GetStatement(uuid.UUID) (*models.BankStatement, error) {
	return nil, errors.New("record not found")
}

func (s *stubStore) UpdateStatement(*models.BankStatement) error { return nil }

func (s *stubStore) ListStatementTransactions(uuid.UUID) ([]models.BankTransaction, error) {
	return nil, nil
}

func setupRouter(store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := service.NewService(store, nil, log)
	h := NewReconciliationHandler(svc)

	r := gin.New()
	r.GET("/transactions/:id/matches", h.ListMatches)
	r.POST("/transactions/:id/reconcile", h.ReconcileTransaction)
	r.POST("/matches/:id/accept", h.AcceptMatch)
	r.POST("/matches/:id/reject", h.RejectMatch)
	r.GET("/stats", h.GetStats)
	return r
}

func performJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReconcileTransactionEndpoint(t *testing.T) {
	orgID := uuid.New()
	store := &stubStore{
		rules: []models.ReconciliationRule{{
			ID:         uuid.New(),
			OrgID:      orgID,
			MatchLevel: models.MatchLevelDeterministic,
			Conditions: datatypes.JSON(`{"amount_tolerance": 0}`),
			IsActive:   true,
		}},
		supplier: &models.SupplierInvoice{
			ID:          uuid.New(),
			OrgID:       orgID,
			Number:      "FRN-1",
			TotalAmount: decimal.RequireFromString("300.00"),
			Balance:     decimal.RequireFromString("300.00"),
		},
		tx: &models.BankTransaction{
			ID:                   uuid.New(),
			OrgID:                orgID,
			OperationDate:        time.Now(),
			Amount:               decimal.RequireFromString("300.00"),
			Direction:            models.DirectionDebit,
			Label:                "PRLV FRN-1",
			ReconciliationStatus: models.ReconciliationUnmatched,
		},
	}
	r := setupRouter(store)

	w := performJSON(r, http.MethodPost, "/transactions/"+store.tx.ID.String()+"/reconcile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Success     bool `json:"success"`
		AutoMatched bool `json:"auto_matched"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.True(t, result.AutoMatched)
	assert.Equal(t, models.ReconciliationMatched, store.tx.ReconciliationStatus)
}

func TestReconcileTransactionInvalidID(t *testing.T) {
	r := setupRouter(&stubStore{})
	w := performJSON(r, http.MethodPost, "/transactions/not-a-uuid/reconcile", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReconcileTransactionUnknownID(t *testing.T) {
	r := setupRouter(&stubStore{})
	w := performJSON(r, http.MethodPost, "/transactions/"+uuid.NewString()+"/reconcile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcceptMatchEndpointConflict(t *testing.T) {
	store := &stubStore{match: &models.ReconciliationMatch{
		ID:     uuid.New(),
		Status: models.MatchAccepted,
	}}
	r := setupRouter(store)

	w := performJSON(r, http.MethodPost, "/matches/"+store.match.ID.String()+"/accept",
		map[string]string{"user_id": uuid.NewString()})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAcceptMatchEndpointMissingUser(t *testing.T) {
	store := &stubStore{match: &models.ReconciliationMatch{
		ID:     uuid.New(),
		Status: models.MatchSuggested,
	}}
	r := setupRouter(store)

	w := performJSON(r, http.MethodPost, "/matches/"+store.match.ID.String()+"/accept", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRejectMatchEndpoint(t *testing.T) {
	store := &stubStore{match: &models.ReconciliationMatch{
		ID:     uuid.New(),
		Status: models.MatchSuggested,
	}}
	r := setupRouter(store)

	w := performJSON(r, http.MethodPost, "/matches/"+store.match.ID.String()+"/reject",
		map[string]string{"user_id": uuid.NewString(), "reason": "mauvais document"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.MatchRejected, store.match.Status)
	assert.Equal(t, "mauvais document", store.match.RejectionReason)
}

func TestListMatchesEndpoint(t *testing.T) {
	txID := uuid.New()
	store := &stubStore{
		tx: &models.BankTransaction{ID: txID, OrgID: uuid.New()},
		match: &models.ReconciliationMatch{
			ID:            uuid.New(),
			TransactionID: txID,
			Status:        models.MatchSuggested,
		},
	}
	r := setupRouter(store)

	w := performJSON(r, http.MethodGet, "/transactions/"+txID.String()+"/matches", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Matches []models.ReconciliationMatch `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Matches, 1)
	assert.Equal(t, store.match.ID, body.Matches[0].ID)
}

func TestStatsEndpointRequiresOrgID(t *testing.T) {
	r := setupRouter(&stubStore{})
	w := performJSON(r, http.MethodGet, "/stats", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
