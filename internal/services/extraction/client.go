package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"bank-reconciliation-backend/internal/models"
)

// Client calls an HTTP extraction service that answers a short prompt
// with a JSON object. Transient failures are retried; any final failure
// is swallowed and reported as confidence 0.
type Client struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
	log     *logrus.Logger
}

func NewClient(baseURL, apiKey string, log *logrus.Logger) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 2
	httpClient.RetryWaitMin = 500 * time.Millisecond
	httpClient.RetryWaitMax = 2 * time.Second
	httpClient.HTTPClient.Timeout = 30 * time.Second
	httpClient.Logger = nil

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpClient,
		log:     log,
	}
}

type extractionRequest struct {
	Prompt string `json:"prompt"`
}

// Extract asks the service to pull an invoice reference, a counterparty
// name and an operation type out of the transaction label.
func (c *Client) Extract(ctx context.Context, tx *models.BankTransaction) Result {
	body, err := json.Marshal(extractionRequest{Prompt: buildPrompt(tx)})
	if err != nil {
		return Result{}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		c.warn(tx, err)
		return Result{}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.warn(tx, err)
		return Result{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.warn(tx, fmt.Errorf("extraction service returned status %d", resp.StatusCode))
		return Result{}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.warn(tx, err)
		return Result{}
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		c.warn(tx, err)
		return Result{}
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	if result.OperationType != "" && !KnownOperationType(result.OperationType) {
		result.OperationType = "autre"
	}
	return result
}

func buildPrompt(tx *models.BankTransaction) string {
	party := "fournisseur"
	if tx.Direction == models.DirectionCredit {
		party = "client"
	}
	return fmt.Sprintf(
		"Analyse ce libellé de transaction bancaire et extrais, au format JSON "+
			"{invoice_ref, client_name, supplier_name, operation_type, confidence}, "+
			"la référence de facture, le nom du %s et le type d'opération "+
			"(virement, prélèvement, carte, chèque, espèces, frais_bancaires, salaire, impot, autre). "+
			"Libellé: %q. Montant: %s %s. Sens: %s. "+
			"confidence est un nombre entre 0 et 1.",
		party, tx.Label, tx.Amount.StringFixed(2), tx.Currency, tx.Direction,
	)
}

func (c *Client) warn(tx *models.BankTransaction, err error) {
	if c.log == nil {
		return
	}
	c.log.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"error":          err,
	}).Warn("extraction fallback failed, continuing without it")
}
