package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ProviderAccount is an account the fake banking provider exposes.
type ProviderAccount struct {
	ResourceID string
	Name       string
	Currency   string
	IBAN       string
	Balance    string
}

// ProviderTransaction is a booked transaction the fake banking provider returns.
type ProviderTransaction struct {
	ID           string
	Date         string
	Amount       string
	Currency     string
	Reference    string
	Counterparty string
}

type providerRequisition struct {
	institution string
	reference   string
}

// BankingProvider is a stateful stand-in for the open-banking provider API.
type BankingProvider struct {
	mu           sync.Mutex
	server       *httptest.Server
	institutions map[string]string
	order        []string
	requisitions map[string]providerRequisition
	linked       map[string][]string
	accounts     map[string]ProviderAccount
	transactions map[string][]ProviderTransaction
	failing      map[string]bool
	dateFrom     map[string]string
	nextID       int
}

// NewBankingProvider returns an empty provider. Call Start before use.
func NewBankingProvider() *BankingProvider {
	p := &BankingProvider{}
	p.Reset()
	return p
}

// Start serves the provider API on a local port.
func (p *BankingProvider) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /token/new/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"access":          "provider-access",
			"access_expires":  3600,
			"refresh":         "provider-refresh",
			"refresh_expires": 86400,
		})
	})

	mux.HandleFunc("POST /token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"access": "provider-access", "access_expires": 3600})
	})

	mux.HandleFunc("GET /institutions/", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()

		out := make([]map[string]any, 0, len(p.order))
		for _, code := range p.order {
			out = append(out, map[string]any{"id": code, "name": p.institutions[code], "logo": ""})
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("POST /agreements/enduser/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": p.newID("agreement")})
	})

	mux.HandleFunc("POST /requisitions/", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			InstitutionID string `json:"institution_id"`
			Reference     string `json:"reference"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"summary": "invalid body"})
			return
		}

		id := p.newID("requisition")
		p.mu.Lock()
		p.requisitions[id] = providerRequisition{institution: body.InstitutionID, reference: body.Reference}
		p.mu.Unlock()

		writeJSON(w, http.StatusCreated, map[string]any{
			"id":       id,
			"link":     "https://provider.example/consent/" + id,
			"status":   "CR",
			"accounts": []string{},
		})
	})

	mux.HandleFunc("GET /requisitions/{id}/", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()

		req, ok := p.requisitions[r.PathValue("id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"summary": "not found"})
			return
		}
		status, accounts := "CR", []string{}
		if linked, ok := p.linked[req.institution]; ok {
			status, accounts = "LN", linked
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":       r.PathValue("id"),
			"status":   status,
			"accounts": accounts,
		})
	})

	mux.HandleFunc("GET /accounts/{id}/details/", func(w http.ResponseWriter, r *http.Request) {
		acc, ok := p.account(r.PathValue("id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"summary": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"account": map[string]any{
			"resourceId": acc.ResourceID,
			"iban":       acc.IBAN,
			"currency":   acc.Currency,
			"ownerName":  "Test Owner",
			"name":       acc.Name,
		}})
	})

	mux.HandleFunc("GET /accounts/{id}/transactions/", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		p.mu.Lock()
		p.dateFrom[id] = r.URL.Query().Get("date_from")
		failing := p.failing[id]
		rows := p.transactions[id]
		p.mu.Unlock()

		if failing {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"summary": "unavailable"})
			return
		}

		booked := make([]map[string]any, 0, len(rows))
		for _, t := range rows {
			item := map[string]any{
				"transactionId":                     t.ID,
				"internalTransactionId":             "int-" + t.ID,
				"bookingDate":                       t.Date,
				"transactionAmount":                 map[string]any{"amount": t.Amount, "currency": t.Currency},
				"remittanceInformationUnstructured": t.Reference,
			}
			if len(t.Amount) > 0 && t.Amount[0] == '-' {
				item["creditorName"] = t.Counterparty
			} else {
				item["debtorName"] = t.Counterparty
			}
			booked = append(booked, item)
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": map[string]any{
			"booked":  booked,
			"pending": []any{},
		}})
	})

	mux.HandleFunc("GET /accounts/{id}/balances/", func(w http.ResponseWriter, r *http.Request) {
		acc, ok := p.account(r.PathValue("id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"summary": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"balances": []map[string]any{{
			"balanceAmount": map[string]any{"amount": acc.Balance, "currency": acc.Currency},
			"balanceType":   "interimAvailable",
		}}})
	})

	p.server = httptest.NewServer(mux)
}

// GetUrl returns the provider base URL.
func (p *BankingProvider) GetUrl() string {
	return p.server.URL
}

// Reset forgets every institution, account and recorded fetch.
func (p *BankingProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.institutions = make(map[string]string)
	p.order = nil
	p.requisitions = make(map[string]providerRequisition)
	p.linked = make(map[string][]string)
	p.accounts = make(map[string]ProviderAccount)
	p.transactions = make(map[string][]ProviderTransaction)
	p.failing = make(map[string]bool)
	p.dateFrom = make(map[string]string)
}

// AddInstitution makes an institution available for linking.
func (p *BankingProvider) AddInstitution(code, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.institutions[code]; !ok {
		p.order = append(p.order, code)
	}
	p.institutions[code] = name
}

// LinkAccounts marks requisitions for the institution as linked to accounts.
func (p *BankingProvider) LinkAccounts(institution string, accounts ...ProviderAccount) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, acc := range accounts {
		p.accounts[acc.ResourceID] = acc
		p.linked[institution] = append(p.linked[institution], acc.ResourceID)
	}
}

// AddTransactions appends booked transactions to an account.
func (p *BankingProvider) AddTransactions(resourceID string, transactions ...ProviderTransaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transactions[resourceID] = append(p.transactions[resourceID], transactions...)
}

// SetFailing makes transaction fetches for the account fail.
func (p *BankingProvider) SetFailing(resourceID string, failing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failing[resourceID] = failing
}

// DateFrom returns the date_from the account's last transaction fetch used.
func (p *BankingProvider) DateFrom(resourceID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.dateFrom[resourceID]
	return v, ok
}

func (p *BankingProvider) account(resourceID string) (ProviderAccount, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.accounts[resourceID]
	return acc, ok
}

func (p *BankingProvider) newID(prefix string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	return fmt.Sprintf("%s-%d", prefix, p.nextID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
