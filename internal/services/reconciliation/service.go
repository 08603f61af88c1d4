package reconciliation

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bank-reconciliation-backend/internal/apperrors"
	"bank-reconciliation-backend/internal/models"
	"bank-reconciliation-backend/internal/services/extraction"
	"bank-reconciliation-backend/internal/services/matching"
)

// Service drives the reconciliation workflow: it finds and scores
// candidates for a transaction, persists the decision, and handles the
// human accept/reject actions. Rules are loaded once per organization
// and treated as read-only afterwards.
type Service struct {
	store     Store
	finder    *matching.CandidateFinder
	engine    *matching.Engine
	extractor extraction.Extractor
	log       *logrus.Logger

	mu    sync.RWMutex
	rules map[uuid.UUID][]models.ReconciliationRule
}

func NewService(store Store, extractor extraction.Extractor, log *logrus.Logger) *Service {
	if extractor == nil {
		extractor = extraction.Disabled{}
	}
	return &Service{
		store:     store,
		finder:    matching.NewCandidateFinder(store),
		engine:    matching.NewEngine(),
		extractor: extractor,
		log:       log,
		rules:     make(map[uuid.UUID][]models.ReconciliationRule),
	}
}

// Result is the outcome of reconciling one transaction.
type Result struct {
	Success     bool                 `json:"success"`
	Matches     []matching.Candidate `json:"matches"`
	BestMatch   *matching.Candidate  `json:"best_match,omitempty"`
	AutoMatched bool                 `json:"auto_matched"`
	MatchID     *uuid.UUID           `json:"match_id,omitempty"`
}

// LoadRules fetches and caches the organization's active rules.
func (s *Service) LoadRules(orgID uuid.UUID) error {
	rules, err := s.store.ActiveRules(orgID)
	if err != nil {
		return apperrors.Storef(err, "loading reconciliation rules for org %s", orgID)
	}
	s.mu.Lock()
	s.rules[orgID] = rules
	s.mu.Unlock()
	s.log.WithFields(logrus.Fields{"org_id": orgID, "rules": len(rules)}).
		Info("reconciliation rules loaded")
	return nil
}

func (s *Service) rulesFor(orgID uuid.UUID) ([]models.ReconciliationRule, error) {
	s.mu.RLock()
	rules, ok := s.rules[orgID]
	s.mu.RUnlock()
	if ok {
		return rules, nil
	}
	if err := s.LoadRules(orgID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules[orgID], nil
}

// ReconcileTransaction runs the tiered matching pipeline for one
// transaction. A score at or above the auto-match threshold creates an
// accepted match immediately; otherwise up to five suggestions are
// returned and the transaction is left untouched.
func (s *Service) ReconcileTransaction(tx *models.BankTransaction) (*Result, error) {
	rules, err := s.rulesFor(tx.OrgID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.finder.Find(tx)
	if err != nil {
		return nil, err
	}

	ranked := s.engine.Evaluate(tx, rules, candidates)
	decision := matching.Decide(ranked)

	result := &Result{
		Success:     true,
		Matches:     decision.Candidates,
		BestMatch:   decision.Best,
		AutoMatched: decision.AutoMatch,
	}
	if result.Matches == nil {
		result.Matches = []matching.Candidate{}
	}

	if !decision.AutoMatch {
		return result, nil
	}

	match, err := s.createMatch(tx, *decision.Best, models.MatchAccepted, true)
	if err != nil {
		return nil, err
	}
	result.MatchID = &match.ID

	if err := s.store.UpdateTransactionReconciliation(tx.ID, models.ReconciliationMatched, decision.Best.Score); err != nil {
		return nil, apperrors.Store(err, "updating transaction after auto-match")
	}
	tx.ReconciliationStatus = models.ReconciliationMatched
	tx.ReconciliationScore = decision.Best.Score

	s.log.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"match_id":       match.ID,
		"score":          decision.Best.Score,
	}).Info("transaction auto-matched")

	return result, nil
}

// GetTransaction fetches one transaction from the ledger store.
func (s *Service) GetTransaction(id uuid.UUID) (*models.BankTransaction, error) {
	tx, err := s.store.GetTransaction(id)
	if err != nil {
		return nil, apperrors.NotFound("transaction %s not found", id)
	}
	return tx, nil
}

// ListMatches returns a transaction's match history, rejected records
// included.
func (s *Service) ListMatches(txID uuid.UUID) ([]models.ReconciliationMatch, error) {
	if _, err := s.store.GetTransaction(txID); err != nil {
		return nil, apperrors.NotFound("transaction %s not found", txID)
	}
	matches, err := s.store.ListMatchesForTransaction(txID)
	if err != nil {
		return nil, apperrors.Store(err, "listing matches")
	}
	return matches, nil
}

// SuggestMatch persists a suggested match for human review and moves the
// transaction to the suggested state.
func (s *Service) SuggestMatch(txID uuid.UUID, candidate matching.Candidate) (*models.ReconciliationMatch, error) {
	tx, err := s.store.GetTransaction(txID)
	if err != nil {
		return nil, apperrors.NotFound("transaction %s not found", txID)
	}

	match, err := s.createMatch(tx, candidate, models.MatchSuggested, false)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateTransactionReconciliation(tx.ID, models.ReconciliationSuggested, candidate.Score); err != nil {
		return nil, apperrors.Store(err, "updating transaction after suggestion")
	}
	return match, nil
}

func (s *Service) createMatch(tx *models.BankTransaction, cand matching.Candidate, status string, auto bool) (*models.ReconciliationMatch, error) {
	matched := cand.OpenAmount
	remaining := tx.Amount.Abs().Sub(matched)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	reasons, _ := json.Marshal(cand.Reasons)

	match := &models.ReconciliationMatch{
		ID:              uuid.New(),
		OrgID:           tx.OrgID,
		TransactionID:   tx.ID,
		MatchType:       cand.Type,
		MatchedAmount:   matched,
		RemainingAmount: remaining,
		ConfidenceScore: cand.Score,
		IsAutoMatch:     auto,
		Reasons:         reasons,
		Status:          status,
		CreatedAt:       time.Now(),
	}

	entityID := cand.EntityID
	switch cand.Type {
	case models.MatchTypeInvoice:
		match.InvoiceID = &entityID
	case models.MatchTypeSupplierInvoice:
		match.SupplierInvoiceID = &entityID
	case models.MatchTypeExpense:
		match.ExpenseID = &entityID
	default:
		return nil, apperrors.Validation("unknown candidate type %q", cand.Type)
	}

	if err := s.store.CreateMatch(match); err != nil {
		return nil, apperrors.Store(err, "creating reconciliation match")
	}
	return match, nil
}

// AcceptMatch validates a suggested match. The match-status update is
// the transactional boundary: its failure aborts. Downstream updates
// (transaction status, payment, invoice balance) are best-effort and
// logged on failure without rolling back the acceptance.
func (s *Service) AcceptMatch(matchID, userID uuid.UUID) error {
	match, err := s.store.GetMatch(matchID)
	if err != nil {
		return apperrors.NotFound("match %s not found", matchID)
	}
	if match.Status != models.MatchSuggested {
		return apperrors.Conflict("match %s is %s, only suggested matches can be accepted", matchID, match.Status)
	}

	now := time.Now()
	match.Status = models.MatchAccepted
	match.ValidatedBy = &userID
	match.ValidatedAt = &now
	if err := s.store.UpdateMatch(match); err != nil {
		return apperrors.Store(err, "accepting match")
	}

	if err := s.store.UpdateTransactionReconciliation(match.TransactionID, models.ReconciliationMatched, match.ConfidenceScore); err != nil {
		s.warnDownstream(match.ID, "transaction status update failed after acceptance", err)
	}

	if match.MatchType == models.MatchTypeInvoice && match.InvoiceID != nil {
		s.applyPaymentToInvoice(match)
	}

	s.log.WithFields(logrus.Fields{
		"match_id":    match.ID,
		"match_type":  match.MatchType,
		"document_id": match.DocumentID(),
	}).Info("match accepted")

	return nil
}

// applyPaymentToInvoice records the settled amount against a receivable
// invoice: inserts a payment and recomputes paid amount, balance and
// status. Best-effort per the accept contract.
func (s *Service) applyPaymentToInvoice(match *models.ReconciliationMatch) {
	invoice, err := s.store.GetInvoice(*match.InvoiceID)
	if err != nil {
		s.warnDownstream(match.ID, "invoice lookup failed after acceptance", err)
		return
	}

	payment := &models.Payment{
		ID:          uuid.New(),
		OrgID:       match.OrgID,
		InvoiceID:   invoice.ID,
		Amount:      match.MatchedAmount,
		PaymentDate: time.Now(),
		Method:      "bank_transfer",
		Reference:   match.ID.String(),
		CreatedAt:   time.Now(),
	}
	if err := s.store.CreatePayment(payment); err != nil {
		s.warnDownstream(match.ID, "payment creation failed after acceptance", err)
		return
	}

	invoice.PaidAmount = invoice.PaidAmount.Add(match.MatchedAmount)
	invoice.Balance = invoice.TotalAmount.Sub(invoice.PaidAmount)
	if invoice.Balance.IsNegative() {
		invoice.Balance = decimal.Zero
	}
	switch {
	case invoice.PaidAmount.GreaterThanOrEqual(invoice.TotalAmount):
		invoice.Status = models.InvoicePaid
	case invoice.PaidAmount.IsPositive():
		invoice.Status = models.InvoicePartial
	default:
		invoice.Status = models.InvoiceUnpaid
	}

	if err := s.store.UpdateInvoicePayment(invoice); err != nil {
		s.warnDownstream(match.ID, "invoice balance update failed after acceptance", err)
	}
}

// RejectMatch marks a suggested match as rejected. The transaction's
// status is not altered.
func (s *Service) RejectMatch(matchID, userID uuid.UUID, reason string) error {
	match, err := s.store.GetMatch(matchID)
	if err != nil {
		return apperrors.NotFound("match %s not found", matchID)
	}
	if match.Status != models.MatchSuggested {
		return apperrors.Conflict("match %s is %s, only suggested matches can be rejected", matchID, match.Status)
	}

	now := time.Now()
	match.Status = models.MatchRejected
	match.ValidatedBy = &userID
	match.ValidatedAt = &now
	match.RejectionReason = reason
	if err := s.store.UpdateMatch(match); err != nil {
		return apperrors.Store(err, "rejecting match")
	}
	return nil
}

// IgnoreTransaction excludes a transaction from reconciliation.
func (s *Service) IgnoreTransaction(txID uuid.UUID) error {
	tx, err := s.store.GetTransaction(txID)
	if err != nil {
		return apperrors.NotFound("transaction %s not found", txID)
	}
	if tx.ReconciliationStatus == models.ReconciliationMatched {
		return apperrors.Conflict("transaction %s is already matched", txID)
	}
	if err := s.store.UpdateTransactionReconciliation(txID, models.ReconciliationIgnored, tx.ReconciliationScore); err != nil {
		return apperrors.Store(err, "ignoring transaction")
	}
	return nil
}

// ExtractTransactionDetails runs the tier-3 extraction fallback for a
// transaction without an accepted match and writes the extracted fields
// back. Extraction never fails the call; an unusable response simply
// leaves confidence at zero.
func (s *Service) ExtractTransactionDetails(ctx context.Context, txID uuid.UUID) (extraction.Result, error) {
	tx, err := s.store.GetTransaction(txID)
	if err != nil {
		return extraction.Result{}, apperrors.NotFound("transaction %s not found", txID)
	}
	if tx.ReconciliationStatus == models.ReconciliationMatched {
		return extraction.Result{}, apperrors.Conflict("transaction %s is already matched", txID)
	}

	result := s.extractor.Extract(ctx, tx)

	tx.ExtractedInvoiceRef = result.InvoiceRef
	tx.ExtractedCounterparty = result.CounterpartyName(tx.Direction)
	tx.ExtractedOperationType = result.OperationType
	tx.ExtractionConfidence = result.Confidence
	if err := s.store.UpdateTransactionExtraction(tx); err != nil {
		return result, apperrors.Store(err, "saving extraction result")
	}
	return result, nil
}

// ReconcileStatement walks a statement's unmatched transactions through
// the matching pipeline. Per-transaction store failures are logged and
// skipped so one bad row does not abort the batch.
func (s *Service) ReconcileStatement(statementID uuid.UUID) (*models.BankStatement, error) {
	statement, err := s.store.GetStatement(statementID)
	if err != nil {
		return nil, apperrors.NotFound("statement %s not found", statementID)
	}
	if statement.Status == models.StatementClosed {
		return nil, apperrors.Conflict("statement %s is closed", statementID)
	}

	transactions, err := s.store.ListStatementTransactions(statementID)
	if err != nil {
		return nil, apperrors.Store(err, "listing statement transactions")
	}

	statement.Status = models.StatementProcessing
	statement.TransactionCount = len(transactions)
	if err := s.store.UpdateStatement(statement); err != nil {
		return nil, apperrors.Store(err, "updating statement status")
	}

	reconciled := 0
	for i := range transactions {
		tx := &transactions[i]
		if tx.ReconciliationStatus == models.ReconciliationMatched {
			reconciled++
			continue
		}
		if tx.ReconciliationStatus != models.ReconciliationUnmatched {
			continue
		}
		result, err := s.ReconcileTransaction(tx)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"statement_id":   statementID,
				"transaction_id": tx.ID,
				"error":          err,
			}).Error("transaction reconciliation failed, continuing")
			continue
		}
		if result.AutoMatched {
			reconciled++
		}
	}

	statement.ReconciledCount = reconciled
	if reconciled == len(transactions) && len(transactions) > 0 {
		statement.Status = models.StatementReconciled
	}
	if err := s.store.UpdateStatement(statement); err != nil {
		return nil, apperrors.Store(err, "updating statement counts")
	}
	return statement, nil
}

// Stats are organization-wide reconciliation KPIs.
type Stats struct {
	Total           int             `json:"total"`
	ByStatus        map[string]int  `json:"by_status"`
	MatchedAmount   decimal.Decimal `json:"matched_amount"`
	UnmatchedAmount decimal.Decimal `json:"unmatched_amount"`
	AutoMatchRate   float64         `json:"auto_match_rate"`
}

// GetStats tabulates transaction counts per reconciliation status and
// matched/unmatched volumes. Read-only.
func (s *Service) GetStats(orgID uuid.UUID) (*Stats, error) {
	transactions, err := s.store.ListTransactionsByOrg(orgID)
	if err != nil {
		return nil, apperrors.Store(err, "listing transactions for stats")
	}

	stats := &Stats{
		ByStatus:        make(map[string]int),
		MatchedAmount:   decimal.Zero,
		UnmatchedAmount: decimal.Zero,
	}
	for i := range transactions {
		tx := &transactions[i]
		stats.Total++
		stats.ByStatus[tx.ReconciliationStatus]++
		switch tx.ReconciliationStatus {
		case models.ReconciliationMatched:
			stats.MatchedAmount = stats.MatchedAmount.Add(tx.Amount.Abs())
		case models.ReconciliationUnmatched:
			stats.UnmatchedAmount = stats.UnmatchedAmount.Add(tx.Amount.Abs())
		}
	}
	if stats.Total > 0 {
		stats.AutoMatchRate = float64(stats.ByStatus[models.ReconciliationMatched]) / float64(stats.Total)
	}
	return stats, nil
}

func (s *Service) warnDownstream(matchID uuid.UUID, msg string, err error) {
	s.log.WithFields(logrus.Fields{
		"match_id": matchID,
		"error":    err,
	}).Warn(msg + "; match stays accepted, flag for manual follow-up")
}
