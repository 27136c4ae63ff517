//go:build integration

package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elliotJHarding/transactions/test/integration/mock"
)

const testPassword = "Str0ngPassword"

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.env.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) iAmRegisteredAndLoggedInAs(email string) error {
	payload := fmt.Sprintf(`{"email": %q, "name": "Test User", "password": %q}`, email, testPassword)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("register returned %d: %v", t.response.status, t.response.body)
	}

	access, _ := getFieldValue(t.response.body, "access_token").(string)
	refresh, _ := getFieldValue(t.response.body, "refresh_token").(string)
	id, _ := getFieldValue(t.response.body, "user.id").(string)
	if access == "" || refresh == "" {
		return fmt.Errorf("register response has no tokens: %v", t.response.body)
	}

	t.accessToken = access
	t.refreshToken = refresh
	t.userID, _ = uuid.Parse(id)
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) theProviderOffersInstitution(code, name string) error {
	t.env.provider.AddInstitution(code, name)
	return nil
}

func (t *testContext) theProviderLinksInstitution(code string, table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		t.env.provider.LinkAccounts(code, mock.ProviderAccount{
			ResourceID: row["resource_id"],
			Name:       row["name"],
			Currency:   withDefault(row["currency"], "GBP"),
			IBAN:       row["iban"],
			Balance:    withDefault(row["balance"], "0.00"),
		})
	}
	return nil
}

func (t *testContext) theProviderHasBookedTransactions(resourceID string, table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		t.env.provider.AddTransactions(resourceID, mock.ProviderTransaction{
			ID:           row["id"],
			Date:         row["date"],
			Amount:       row["amount"],
			Currency:     row["currency"],
			Reference:    row["reference"],
			Counterparty: row["counterparty"],
		})
	}
	return nil
}

func (t *testContext) theProviderFailsFor(resourceID string) error {
	t.env.provider.SetFailing(resourceID, true)
	return nil
}

// myAccountsAreLinked walks the link flow through the API: institution sync,
// requisition, then account sync.
func (t *testContext) myAccountsAreLinked(code string) error {
	if err := t.executeRequest(http.MethodPost, "/api/v1/institutions/sync", nil); err != nil {
		return err
	}
	if err := t.executeRequest(http.MethodGet, "/api/v1/institutions", nil); err != nil {
		return err
	}

	institutions, ok := t.response.body.([]any)
	if !ok {
		return fmt.Errorf("institutions response is not a list: %v", t.response.body)
	}
	var institutionID string
	for _, in := range institutions {
		if getFieldValue(in, "code") == code {
			institutionID, _ = getFieldValue(in, "id").(string)
		}
	}
	if institutionID == "" {
		return fmt.Errorf("institution %s was not synced", code)
	}

	payload := fmt.Sprintf(`{"institution_id": %q}`, institutionID)
	if err := t.executeRequest(http.MethodPost, "/api/v1/requisitions", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("requisition returned %d: %v", t.response.status, t.response.body)
	}

	if err := t.executeRequest(http.MethodPost, "/api/v1/accounts/sync", nil); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("account sync returned %d: %v", t.response.status, t.response.body)
	}

	accounts, _ := getFieldValue(t.response.body, "accounts").([]any)
	for _, acc := range accounts {
		name, _ := getFieldValue(acc, "name").(string)
		id, _ := getFieldValue(acc, "id").(string)
		t.saved["account:"+name] = id
	}
	return nil
}

func (t *testContext) theProviderWasAskedFrom(resourceID, date string) error {
	got, ok := t.env.provider.DateFrom(resourceID)
	if !ok {
		return fmt.Errorf("no transaction fetch for %s", resourceID)
	}
	if got != date {
		return fmt.Errorf("expected date_from %q for %s, got %q", date, resourceID, got)
	}
	return nil
}

func (t *testContext) theProviderWasAskedForAll(resourceID string) error {
	return t.theProviderWasAskedFrom(resourceID, "")
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	t.env.clock.SetCurrentTime(now)
	return nil
}

func (t *testContext) hoursPass(hours int) error {
	t.env.clock.Advance(time.Duration(hours) * time.Hour)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSaveTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders substitutes {{name}} with saved values and the current tokens.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{user_id}}", t.userID.String())
	for name, value := range t.saved {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.env.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var decoded any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = decoded
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, t.replacePlaceholders(field))
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, t.replacePlaceholders(field)) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if value := getFieldValue(t.response.body, t.replacePlaceholders(field)); value != nil {
		return fmt.Errorf("field '%s' unexpectedly present with value %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	return hasItems(getFieldValue(t.response.body, t.replacePlaceholders(field)), count)
}

func (t *testContext) theResponseShouldHaveItems(count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	return hasItems(t.response.body, count)
}

func hasItems(value any, count int) error {
	var n int
	switch v := value.(type) {
	case []any:
		n = len(v)
	case map[string]any:
		n = len(v)
	default:
		return fmt.Errorf("expected a list or object, got %v", value)
	}
	if n != count {
		return fmt.Errorf("expected %d items, got %d: %v", count, n, value)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	m, ok := t.env.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(m).Elem()
	slicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.env.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(slicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := slicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

// getFieldValue walks a decoded JSON value along a dot separated path.
// Numeric segments index into lists.
func getFieldValue(object any, dotSeparatedField string) any {
	current := object
	for _, part := range strings.Split(dotSeparatedField, ".") {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[part]
			if !ok {
				return nil
			}
			current = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			current = v[i]
		default:
			return nil
		}
	}
	return current
}

func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) == 0 {
		return nil, errors.New("table has no header row")
	}

	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, r := range table.Rows[1:] {
		row := make(map[string]string, len(header))
		for i, cell := range r.Cells {
			row[header[i].Value] = cell.Value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
