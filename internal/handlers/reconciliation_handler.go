package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bank-reconciliation-backend/internal/apperrors"
	"bank-reconciliation-backend/internal/models"
	"bank-reconciliation-backend/internal/services/matching"
	service "bank-reconciliation-backend/internal/services/reconciliation"
)

type ReconciliationHandler struct {
	service *service.Service
}

func NewReconciliationHandler(s *service.Service) *ReconciliationHandler {
	return &ReconciliationHandler{service: s}
}

// statusFor maps error kinds to HTTP statuses: store failures are
// server-side, caller mistakes are 4xx.
func statusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// ReconcileTransaction runs the matching pipeline for one transaction
// and returns the decision. An empty candidate list is a valid outcome,
// not an error.
func (h *ReconciliationHandler) ReconcileTransaction(c *gin.Context) {
	txID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tx, err := h.service.GetTransaction(txID)
	if err != nil {
		abortWith(c, err)
		return
	}

	result, err := h.service.ReconcileTransaction(tx)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ReconcileStatement runs the pipeline over a whole statement.
func (h *ReconciliationHandler) ReconcileStatement(c *gin.Context) {
	statementID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	statement, err := h.service.ReconcileStatement(statementID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"statement_id":      statement.ID,
		"status":            statement.Status,
		"transaction_count": statement.TransactionCount,
		"reconciled_count":  statement.ReconciledCount,
	})
}

type suggestPayload struct {
	Type       string  `json:"type" binding:"required"`
	EntityID   string  `json:"entity_id" binding:"required"`
	Reference  string  `json:"reference"`
	OpenAmount string  `json:"open_amount" binding:"required"`
	Score      float64 `json:"score"`
}

// SuggestMatch persists a suggested match chosen by a reviewer from the
// candidate list.
func (h *ReconciliationHandler) SuggestMatch(c *gin.Context) {
	txID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var payload suggestPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	candidate, err := payload.toCandidate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.service.SuggestMatch(txID, candidate)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, match)
}

type validatePayload struct {
	UserID string `json:"user_id" binding:"required"`
	Reason string `json:"reason"`
}

// AcceptMatch validates a suggested match.
func (h *ReconciliationHandler) AcceptMatch(c *gin.Context) {
	matchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var payload validatePayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	if err := h.service.AcceptMatch(matchID, userID); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "match accepted"})
}

// RejectMatch marks a suggested match as rejected.
func (h *ReconciliationHandler) RejectMatch(c *gin.Context) {
	matchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var payload validatePayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	if err := h.service.RejectMatch(matchID, userID, payload.Reason); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "match rejected"})
}

// ListMatches returns the match records for a transaction, newest first.
func (h *ReconciliationHandler) ListMatches(c *gin.Context) {
	txID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	matches, err := h.service.ListMatches(txID)
	if err != nil {
		abortWith(c, err)
		return
	}
	if matches == nil {
		matches = []models.ReconciliationMatch{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// IgnoreTransaction excludes a transaction from reconciliation.
func (h *ReconciliationHandler) IgnoreTransaction(c *gin.Context) {
	txID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.service.IgnoreTransaction(txID); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction ignored"})
}

// ExtractTransaction runs the tier-3 extraction fallback on demand.
func (h *ReconciliationHandler) ExtractTransaction(c *gin.Context) {
	txID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	result, err := h.service.ExtractTransactionDetails(c.Request.Context(), txID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// LoadRules reloads the organization's rules into the engine cache.
func (h *ReconciliationHandler) LoadRules(c *gin.Context) {
	orgID, err := uuid.Parse(c.Query("org_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid org_id"})
		return
	}
	if err := h.service.LoadRules(orgID); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rules loaded"})
}

// GetStats returns organization-wide reconciliation KPIs.
func (h *ReconciliationHandler) GetStats(c *gin.Context) {
	orgID, err := uuid.Parse(c.Query("org_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid org_id"})
		return
	}
	stats, err := h.service.GetStats(orgID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (p suggestPayload) toCandidate() (matching.Candidate, error) {
	entityID, err := uuid.Parse(p.EntityID)
	if err != nil {
		return matching.Candidate{}, err
	}
	open, err := decimal.NewFromString(p.OpenAmount)
	if err != nil {
		return matching.Candidate{}, err
	}
	return matching.Candidate{
		Type:       p.Type,
		EntityID:   entityID,
		Reference:  p.Reference,
		OpenAmount: open,
		Score:      p.Score,
	}, nil
}
