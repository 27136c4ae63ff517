package banking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
)

// errUnauthorized marks a 401 so the client can renew the token once.
var errUnauthorized = errors.New("provider rejected the access token")

// StatusError is returned for non-2xx provider responses.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Body)
}

// Config holds the provider settings the client needs besides the session.
type Config struct {
	BaseURL     string
	Country     string
	RedirectURL string
}

// client implements adapter.BankingClient against the provider's v2 API.
type client struct {
	httpClient *http.Client
	session    *Session
	cfg        Config
}

// NewClient creates a new banking client.
func NewClient(httpClient *http.Client, session *Session, cfg Config) adapter.BankingClient {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &client{
		httpClient: httpClient,
		session:    session,
		cfg:        cfg,
	}
}

type institutionPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// ListInstitutions lists institutions of the configured country.
func (c *client) ListInstitutions(ctx context.Context) ([]adapter.ProviderInstitution, error) {
	var payload []institutionPayload
	query := url.Values{"country": {c.cfg.Country}}
	if err := c.get(ctx, "/institutions/?"+query.Encode(), &payload); err != nil {
		return nil, err
	}

	out := make([]adapter.ProviderInstitution, len(payload))
	for i, p := range payload {
		out[i] = adapter.ProviderInstitution{Code: p.ID, Name: p.Name, LogoURL: p.Logo}
	}
	return out, nil
}

type requisitionPayload struct {
	ID       string   `json:"id"`
	Link     string   `json:"link"`
	Status   string   `json:"status"`
	Accounts []string `json:"accounts"`
}

func (p requisitionPayload) toProvider() *adapter.ProviderRequisition {
	return &adapter.ProviderRequisition{
		ID:         p.ID,
		Link:       p.Link,
		Status:     p.Status,
		AccountIDs: p.Accounts,
	}
}

// CreateRequisition creates an end-user agreement, then a requisition using it.
func (c *client) CreateRequisition(ctx context.Context, institutionCode, reference string) (*adapter.ProviderRequisition, error) {
	var agreement struct {
		ID string `json:"id"`
	}
	err := c.post(ctx, "/agreements/enduser/", map[string]any{"institution_id": institutionCode}, &agreement)
	if err != nil {
		return nil, fmt.Errorf("failed to create agreement: %w", err)
	}

	var req requisitionPayload
	err = c.post(ctx, "/requisitions/", map[string]any{
		"redirect":       c.cfg.RedirectURL,
		"institution_id": institutionCode,
		"reference":      reference,
		"agreement":      agreement.ID,
	}, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to create requisition: %w", err)
	}

	return req.toProvider(), nil
}

// GetRequisition fetches a requisition.
func (c *client) GetRequisition(ctx context.Context, requisitionID string) (*adapter.ProviderRequisition, error) {
	var req requisitionPayload
	if err := c.get(ctx, "/requisitions/"+url.PathEscape(requisitionID)+"/", &req); err != nil {
		return nil, err
	}
	return req.toProvider(), nil
}

// GetAccountDetails fetches the details of an account.
func (c *client) GetAccountDetails(ctx context.Context, resourceID string) (*adapter.ProviderAccount, error) {
	var payload struct {
		Account struct {
			ResourceID string `json:"resourceId"`
			IBAN       string `json:"iban"`
			BBAN       string `json:"bban"`
			Currency   string `json:"currency"`
			OwnerName  string `json:"ownerName"`
			Name       string `json:"name"`
			Product    string `json:"product"`
		} `json:"account"`
	}
	if err := c.get(ctx, "/accounts/"+url.PathEscape(resourceID)+"/details/", &payload); err != nil {
		return nil, err
	}

	a := payload.Account
	name := a.Name
	if name == "" {
		name = a.Product
	}
	return &adapter.ProviderAccount{
		ResourceID: resourceID,
		Name:       name,
		OwnerName:  a.OwnerName,
		Currency:   a.Currency,
		IBAN:       a.IBAN,
		BBAN:       a.BBAN,
	}, nil
}

type amountPayload struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type accountRefPayload struct {
	IBAN string `json:"iban"`
	BBAN string `json:"bban"`
}

func (a *accountRefPayload) number() string {
	if a == nil {
		return ""
	}
	if a.BBAN != "" {
		return a.BBAN
	}
	return a.IBAN
}

type transactionPayload struct {
	TransactionID                     string             `json:"transactionId"`
	InternalTransactionID             string             `json:"internalTransactionId"`
	BookingDate                       string             `json:"bookingDate"`
	BookingDateTime                   string             `json:"bookingDateTime"`
	TransactionAmount                 amountPayload      `json:"transactionAmount"`
	RemittanceInformationUnstructured string             `json:"remittanceInformationUnstructured"`
	CreditorName                      string             `json:"creditorName"`
	CreditorAccount                   *accountRefPayload `json:"creditorAccount"`
	DebtorName                        string             `json:"debtorName"`
	DebtorAccount                     *accountRefPayload `json:"debtorAccount"`
	ProprietaryBankTransactionCode    string             `json:"proprietaryBankTransactionCode"`
}

// FetchTransactions fetches booked transactions. Pending ones are ignored.
func (c *client) FetchTransactions(ctx context.Context, resourceID string, since *time.Time) ([]adapter.RawTransaction, error) {
	path := "/accounts/" + url.PathEscape(resourceID) + "/transactions/"
	if since != nil {
		path += "?" + url.Values{"date_from": {since.Format(time.DateOnly)}}.Encode()
	}

	var payload struct {
		Transactions struct {
			Booked []transactionPayload `json:"booked"`
		} `json:"transactions"`
	}
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	out := make([]adapter.RawTransaction, 0, len(payload.Transactions.Booked))
	for _, p := range payload.Transactions.Booked {
		raw, err := p.toRaw()
		if err != nil {
			slog.Warn("Skipping malformed provider transaction",
				"resource_id", resourceID,
				"transaction_id", p.TransactionID,
				"error", err,
			)
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

func (p transactionPayload) toRaw() (adapter.RawTransaction, error) {
	bookingDate, err := time.Parse(time.DateOnly, p.BookingDate)
	if err != nil {
		return adapter.RawTransaction{}, fmt.Errorf("bad booking date %q: %w", p.BookingDate, err)
	}

	raw := adapter.RawTransaction{
		TransactionID:       p.TransactionID,
		InternalID:          p.InternalTransactionID,
		BookingDate:         bookingDate,
		Amount:              p.TransactionAmount.Amount,
		Currency:            p.TransactionAmount.Currency,
		Reference:           p.RemittanceInformationUnstructured,
		CreditorName:        p.CreditorName,
		CreditorAccount:     p.CreditorAccount.number(),
		DebtorName:          p.DebtorName,
		DebtorAccount:       p.DebtorAccount.number(),
		BankTransactionCode: p.ProprietaryBankTransactionCode,
	}
	if p.BookingDateTime != "" {
		if at, err := time.Parse(time.RFC3339, p.BookingDateTime); err == nil {
			at = at.UTC()
			raw.BookedAt = &at
		}
	}
	return raw, nil
}

// balancePreference lists balance types from most to least preferred.
var balancePreference = []string{"interimAvailable", "interimBooked", "closingBooked", "expected"}

// FetchBalance fetches the current balance of an account.
func (c *client) FetchBalance(ctx context.Context, resourceID string) (decimal.Decimal, error) {
	var payload struct {
		Balances []struct {
			BalanceAmount amountPayload `json:"balanceAmount"`
			BalanceType   string        `json:"balanceType"`
		} `json:"balances"`
	}
	if err := c.get(ctx, "/accounts/"+url.PathEscape(resourceID)+"/balances/", &payload); err != nil {
		return decimal.Zero, err
	}
	if len(payload.Balances) == 0 {
		return decimal.Zero, fmt.Errorf("no balances reported for account %s", resourceID)
	}

	for _, want := range balancePreference {
		for _, b := range payload.Balances {
			if b.BalanceType == want {
				return b.BalanceAmount.Amount, nil
			}
		}
	}
	return payload.Balances[0].BalanceAmount.Amount, nil
}

func (c *client) get(ctx context.Context, path string, out any) error {
	return c.authorized(ctx, func(token string) error {
		return doJSON(ctx, c.httpClient, http.MethodGet, c.cfg.BaseURL+path, token, nil, out)
	})
}

func (c *client) post(ctx context.Context, path string, body, out any) error {
	return c.authorized(ctx, func(token string) error {
		return postJSON(ctx, c.httpClient, c.cfg.BaseURL+path, token, body, out)
	})
}

// authorized runs call with the session token, renewing it once on a 401.
func (c *client) authorized(ctx context.Context, call func(token string) error) error {
	token, err := c.session.Token(ctx)
	if err != nil {
		return err
	}

	err = call(token)
	if !errors.Is(err, errUnauthorized) {
		return err
	}

	c.session.Invalidate()
	token, err = c.session.Token(ctx)
	if err != nil {
		return err
	}
	return call(token)
}

func postJSON(ctx context.Context, httpClient *http.Client, endpoint, token string, body, out any) error {
	return doJSON(ctx, httpClient, http.MethodPost, endpoint, token, body, out)
}

func doJSON(ctx context.Context, httpClient *http.Client, method, endpoint, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		return errUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
