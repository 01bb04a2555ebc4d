package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/finance-tracker-be/internal/auth"
	"github.com/hongminglow/finance-tracker-be/internal/config"
	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/storage/memory"
)

type apiClient struct {
	t     *testing.T
	base  string
	store *memory.Store
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()
	cfg := config.Config{
		Port:        "8080",
		DataBackend: config.BackendMemory,
		JWTSecret:   "test-secret",
		JWTIssuer:   "finance-tracker-test",
		CORSOrigins: []string{"*"},
		APIBasePath: "/api/v1",
		Location:    time.UTC,
	}
	store := memory.New()
	ts := httptest.NewServer(NewHandler(cfg, store, applog.Discard()))
	t.Cleanup(ts.Close)
	return &apiClient{t: t, base: ts.URL, store: store}
}

// do sends a JSON request and returns the status and raw body.
func (c *apiClient) do(method, path, token string, payload any) (int, []byte) {
	c.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+"/api/v1"+path, body)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, out
}

// doRaw sends body verbatim.
func (c *apiClient) doRaw(method, path, token, body string) (int, []byte) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+"/api/v1"+path, strings.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, out
}

func (c *apiClient) decode(raw []byte, dst any) {
	c.t.Helper()
	require.NoError(c.t, json.Unmarshal(raw, dst), string(raw))
}

func (c *apiClient) register(username string) {
	c.t.Helper()
	status, body := c.do(http.MethodPost, "/auth/register/", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse",
	})
	require.Equal(c.t, http.StatusCreated, status, string(body))
}

func (c *apiClient) login(username string) string {
	c.t.Helper()
	status, body := c.do(http.MethodPost, "/auth/login/", "", map[string]string{
		"username": username,
		"password": "correct-horse",
	})
	require.Equal(c.t, http.StatusOK, status, string(body))
	var out struct {
		Token string `json:"token"`
	}
	c.decode(body, &out)
	require.NotEmpty(c.t, out.Token)
	return out.Token
}

func (c *apiClient) signup(username string) string {
	c.t.Helper()
	c.register(username)
	return c.login(username)
}

func (c *apiClient) createCategory(token, name string, kind models.CategoryType) models.Category {
	c.t.Helper()
	status, body := c.do(http.MethodPost, "/categories/", token, map[string]any{"name": name, "type": kind})
	require.Equal(c.t, http.StatusCreated, status, string(body))
	var out models.Category
	c.decode(body, &out)
	return out
}

func (c *apiClient) userID(username string) int64 {
	c.t.Helper()
	u, err := c.store.FindByUsername(context.Background(), username)
	require.NoError(c.t, err)
	return u.ID
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	resp, err := http.Get(api.base + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, config.BackendMemory, body["backend"])
}

func TestRegister(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(http.MethodPost, "/auth/register/", "", map[string]string{
		"username": "ann", "email": "ann@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, status)
	var user map[string]any
	api.decode(body, &user)
	assert.Equal(t, "ann", user["username"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "PasswordHash")

	status, body = api.do(http.MethodPost, "/auth/register/", "", map[string]string{
		"username": "ann", "password": "another-pass",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "username")

	status, body = api.do(http.MethodPost, "/auth/register/", "", map[string]string{
		"username": "bob", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "password")
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)
	api.register("ann")

	first := api.login("ann")
	second := api.login("ann")
	assert.Equal(t, first, second, "login reuses the stored token")

	status, _ := api.do(http.MethodPost, "/auth/login/", "", map[string]string{"username": "ann", "password": "wrong-horse"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodPost, "/auth/login/", "", map[string]string{"username": "nobody", "password": "correct-horse"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodPost, "/auth/login/", "", map[string]string{"username": "ann"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthentication(t *testing.T) {
	api := newTestAPI(t)
	token := api.signup("ann")

	status, _ := api.do(http.MethodGet, "/categories/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodGet, "/categories/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodGet, "/categories/", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = api.do(http.MethodPost, "/auth/logout/", token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = api.do(http.MethodGet, "/categories/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "logged out token is rejected")

	fresh := api.login("ann")
	assert.NotEqual(t, token, fresh)
}

func TestCategoryOwnership(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")
	bob := api.signup("bob")

	food := api.createCategory(ann, "Food", models.CategoryExpense)

	status, _ := api.do(http.MethodGet, fmt.Sprintf("/categories/%d/", food.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = api.do(http.MethodDelete, fmt.Sprintf("/categories/%d/", food.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := api.do(http.MethodGet, "/categories/", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))

	status, body = api.do(http.MethodPost, "/transactions/", bob, map[string]any{"category": food.ID, "amount": "5.00"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "category")

	status, _ = api.do(http.MethodPost, "/categories/", ann, map[string]any{"name": "Gifts", "type": "transfer"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTransactionLifecycle(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")
	food := api.createCategory(ann, "Food", models.CategoryExpense)

	status, body := api.do(http.MethodPost, "/transactions/", ann, map[string]any{
		"category": food.ID,
		"amount":   "12.5",
		"date":     "1999-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var tx map[string]any
	api.decode(body, &tx)
	assert.Equal(t, "12.50", tx["amount"])
	assert.NotContains(t, tx["date"], "1999", "date is assigned by the server")
	assert.Nil(t, tx["recurrence_period"])

	id := int64(tx["id"].(float64))

	status, body = api.do(http.MethodPatch, fmt.Sprintf("/transactions/%d/", id), ann, map[string]any{"is_recurring": true})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "recurrence_period")

	status, body = api.do(http.MethodPatch, fmt.Sprintf("/transactions/%d/", id), ann, map[string]any{
		"is_recurring": true, "recurrence_period": "monthly",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	api.decode(body, &tx)
	assert.Equal(t, "monthly", tx["recurrence_period"])

	status, body = api.do(http.MethodPatch, fmt.Sprintf("/transactions/%d/", id), ann, map[string]any{"is_recurring": false})
	assert.Equal(t, http.StatusBadRequest, status, "period must be cleared with the flag")

	status, body = api.do(http.MethodPut, fmt.Sprintf("/transactions/%d/", id), ann, map[string]any{
		"category": food.ID, "amount": "20",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	api.decode(body, &tx)
	assert.Equal(t, false, tx["is_recurring"])
	assert.Nil(t, tx["recurrence_period"])

	status, _ = api.do(http.MethodDelete, fmt.Sprintf("/categories/%d/", food.ID), ann, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = api.do(http.MethodGet, fmt.Sprintf("/transactions/%d/", id), ann, nil)
	assert.Equal(t, http.StatusNotFound, status, "deleting a category removes its transactions")
}

func TestTransactionFilters(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")
	food := api.createCategory(ann, "Food", models.CategoryExpense)
	pay := api.createCategory(ann, "Salary", models.CategoryIncome)
	annID := api.userID("ann")

	seed := func(categoryID int64, amount string, at time.Time) {
		_, err := api.store.CreateTransaction(context.Background(), models.Transaction{
			UserID: annID, CategoryID: categoryID, Amount: models.MustAmount(amount), Date: at,
		})
		require.NoError(t, err)
	}
	seed(food.ID, "1", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	seed(food.ID, "2", time.Date(2024, 3, 2, 23, 59, 0, 0, time.UTC))
	seed(pay.ID, "3", time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC))
	seed(food.ID, "4", time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))

	amounts := func(query string) []string {
		status, body := api.do(http.MethodGet, "/transactions/"+query, ann, nil)
		require.Equal(t, http.StatusOK, status, string(body))
		var txs []struct {
			Amount string `json:"amount"`
		}
		api.decode(body, &txs)
		out := make([]string, 0, len(txs))
		for _, tx := range txs {
			out = append(out, tx.Amount)
		}
		return out
	}

	assert.Equal(t, []string{"4.00", "2.00", "3.00", "1.00"}, amounts(""))
	assert.Equal(t, []string{"2.00", "3.00"}, amounts("?start_date=2024-03-02&end_date=2024-03-02"))
	assert.Equal(t, []string{"4.00", "2.00", "1.00"}, amounts(fmt.Sprintf("?category=%d", food.ID)))
	assert.Equal(t, []string{"2.00", "1.00"}, amounts(fmt.Sprintf("?category=%d&end_date=2024-03-02", food.ID)))

	status, _ := api.do(http.MethodGet, "/transactions/?start_date=03-02-2024", ann, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBudgetValidation(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")

	status, body := api.do(http.MethodPost, "/budgets/", ann, map[string]any{
		"amount": "100", "start_date": "2024-05-10", "end_date": "2024-05-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "end_date")

	status, body = api.do(http.MethodPost, "/budgets/", ann, map[string]any{
		"amount": "0", "start_date": "2024-05-01", "end_date": "2024-05-01",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var b map[string]any
	api.decode(body, &b)
	assert.Nil(t, b["category"])
	assert.Equal(t, "0.00", b["amount"])
}

func TestBudgetAlertAndNotifications(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")
	food := api.createCategory(ann, "Food", models.CategoryExpense)

	today := models.DateOf(time.Now().UTC())
	status, body := api.do(http.MethodPost, "/budgets/", ann, map[string]any{
		"category":   food.ID,
		"amount":     "100",
		"start_date": today.AddDate(0, 0, -1).Format(models.DateLayout),
		"end_date":   today.AddDate(0, 0, 1).Format(models.DateLayout),
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	spend := func(amount string) {
		status, body := api.do(http.MethodPost, "/transactions/", ann, map[string]any{"category": food.ID, "amount": amount})
		require.Equal(t, http.StatusCreated, status, string(body))
	}
	unread := func() []models.Notification {
		status, body := api.do(http.MethodGet, "/notifications/unread/", ann, nil)
		require.Equal(t, http.StatusOK, status)
		var out []models.Notification
		api.decode(body, &out)
		return out
	}

	spend("60")
	assert.Empty(t, unread())

	spend("50")
	notes := unread()
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, "110.00")

	spend("5")
	assert.Len(t, unread(), 1, "only the crossing write notifies")

	status, body = api.do(http.MethodPatch, fmt.Sprintf("/notifications/%d/", notes[0].ID), ann, map[string]any{"is_read": true})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Empty(t, unread())

	status, _ = api.do(http.MethodPatch, fmt.Sprintf("/notifications/%d/", notes[0].ID), ann, map[string]any{"is_read": false})
	assert.Equal(t, http.StatusBadRequest, status)

	_, err := api.store.CreateNotification(context.Background(), models.Notification{UserID: api.userID("ann"), Message: "hello"})
	require.NoError(t, err)
	require.Len(t, unread(), 1)

	status, body = api.do(http.MethodPost, "/notifications/mark-all-read/", ann, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"All notifications marked as read."}`, string(body))
	assert.Empty(t, unread())

	bob := api.signup("bob")
	status, _ = api.do(http.MethodGet, fmt.Sprintf("/notifications/%d/", notes[0].ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBudgetAlertRespectsProfile(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")
	food := api.createCategory(ann, "Food", models.CategoryExpense)

	status, _ := api.do(http.MethodPatch, "/profile/", ann, map[string]any{"budget_limit_notification": false})
	require.Equal(t, http.StatusOK, status)

	today := models.DateOf(time.Now().UTC()).Format(models.DateLayout)
	status, _ = api.do(http.MethodPost, "/budgets/", ann, map[string]any{"amount": "10", "start_date": today, "end_date": today})
	require.Equal(t, http.StatusCreated, status)

	status, _ = api.do(http.MethodPost, "/transactions/", ann, map[string]any{"category": food.ID, "amount": "50"})
	require.Equal(t, http.StatusCreated, status)

	_, body := api.do(http.MethodGet, "/notifications/", ann, nil)
	assert.JSONEq(t, "[]", string(body))
}

func TestProfile(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")

	status, body := api.do(http.MethodGet, "/profile/", ann, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"currency":"USD","budget_limit_notification":true}`, string(body))

	status, _ = api.do(http.MethodPatch, "/profile/", ann, map[string]any{"currency": "euro"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = api.do(http.MethodPut, "/profile/", ann, map[string]any{"currency": "EUR"})
	assert.Equal(t, http.StatusBadRequest, status, "full update needs every field")

	status, body = api.do(http.MethodPatch, "/profile/", ann, map[string]any{"currency": "eur"})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"currency":"EUR","budget_limit_notification":true}`, string(body))
}

func TestUserAdministration(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")
	annID := api.userID("ann")
	api.createCategory(ann, "Food", models.CategoryExpense)

	status, _ := api.do(http.MethodGet, "/users/", ann, nil)
	assert.Equal(t, http.StatusForbidden, status)

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	_, err = api.store.CreateUser(context.Background(), models.User{Username: "root", Role: models.RoleStaff, PasswordHash: hash})
	require.NoError(t, err)
	staff := api.login("root")

	status, body := api.do(http.MethodGet, "/users/", staff, nil)
	require.Equal(t, http.StatusOK, status)
	var users []models.User
	api.decode(body, &users)
	assert.Len(t, users, 2)

	status, _ = api.do(http.MethodDelete, fmt.Sprintf("/users/%d/", annID), staff, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = api.do(http.MethodGet, "/categories/", ann, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	cats, err := api.store.ListCategories(context.Background(), annID)
	require.NoError(t, err)
	assert.Empty(t, cats)

	status, _ = api.do(http.MethodGet, fmt.Sprintf("/users/%d/", annID), staff, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t)
	req, err := http.NewRequest(http.MethodOptions, api.base+"/api/v1/categories/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestLoginUnreadableBody(t *testing.T) {
	api := newTestAPI(t)
	api.register("ann")

	for _, body := range []string{"", "{", "[1, 2]", `{"username": 7}`} {
		status, out := api.doRaw(http.MethodPost, "/auth/login/", "", body)
		assert.Equal(t, http.StatusUnauthorized, status, body)
		assert.JSONEq(t, `{"error":"username and password required"}`, string(out), body)
	}
}

func TestMalformedValuesAreFieldErrors(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")
	food := api.createCategory(ann, "Food", models.CategoryExpense)

	cases := []struct {
		path  string
		body  string
		field string
	}{
		{"/transactions/", fmt.Sprintf(`{"category": %d, "amount": "abc"}`, food.ID), "amount"},
		{"/transactions/", fmt.Sprintf(`{"category": %d, "amount": 1e2000000000}`, food.ID), "amount"},
		{"/transactions/", fmt.Sprintf(`{"category": %d, "amount": 1e-2000000000}`, food.ID), "amount"},
		{"/budgets/", `{"amount": 1e2000000000, "start_date": "2024-05-01", "end_date": "2024-05-31"}`, "amount"},
		{"/budgets/", `{"amount": "10", "start_date": "2024-05-01", "end_date": "31/05/2024"}`, "end_date"},
	}
	for _, tc := range cases {
		status, out := api.doRaw(http.MethodPost, tc.path, ann, tc.body)
		require.Equal(t, http.StatusBadRequest, status, tc.body)
		var errs map[string]string
		api.decode(out, &errs)
		assert.Contains(t, errs, tc.field, tc.body)
	}
}

func TestMarkAllReadIsScopedToCaller(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")
	bob := api.signup("bob")
	ctx := context.Background()

	_, err := api.store.CreateNotification(ctx, models.Notification{UserID: api.userID("ann"), Message: "for ann"})
	require.NoError(t, err)
	bobs, err := api.store.CreateNotification(ctx, models.Notification{UserID: api.userID("bob"), Message: "for bob"})
	require.NoError(t, err)

	status, _ := api.do(http.MethodPost, "/notifications/mark-all-read/", ann, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := api.do(http.MethodGet, "/notifications/unread/", bob, nil)
	require.Equal(t, http.StatusOK, status)
	var unread []models.Notification
	api.decode(body, &unread)
	require.Len(t, unread, 1)
	assert.Equal(t, bobs.ID, unread[0].ID)
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	api := newTestAPI(t)
	ann := api.signup("ann")
	bob := api.signup("bob")
	food := api.createCategory(ann, "Food", models.CategoryExpense)
	bobFood := api.createCategory(bob, "Food", models.CategoryExpense)

	status, body := api.do(http.MethodPost, "/transactions/", ann, map[string]any{"category": food.ID, "amount": "12"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var tx models.Transaction
	api.decode(body, &tx)

	status, body = api.do(http.MethodPost, "/budgets/", ann, map[string]any{
		"category": food.ID, "amount": "100", "start_date": "2024-05-01", "end_date": "2024-05-31",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var budget models.Budget
	api.decode(body, &budget)

	note, err := api.store.CreateNotification(context.Background(), models.Notification{UserID: api.userID("ann"), Message: "hi"})
	require.NoError(t, err)

	txPath := fmt.Sprintf("/transactions/%d/", tx.ID)
	budgetPath := fmt.Sprintf("/budgets/%d/", budget.ID)
	notePath := fmt.Sprintf("/notifications/%d/", note.ID)

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, txPath, nil},
		{http.MethodPut, txPath, map[string]any{"category": bobFood.ID, "amount": "1"}},
		{http.MethodPatch, txPath, map[string]any{"amount": "1"}},
		{http.MethodDelete, txPath, nil},
		{http.MethodGet, budgetPath, nil},
		{http.MethodPut, budgetPath, map[string]any{"amount": "1", "start_date": "2024-01-01", "end_date": "2024-01-02"}},
		{http.MethodPatch, budgetPath, map[string]any{"amount": "1"}},
		{http.MethodDelete, budgetPath, nil},
		{http.MethodPatch, notePath, map[string]any{"is_read": true}},
	}
	for _, req := range requests {
		status, body := api.do(req.method, req.path, bob, req.body)
		assert.Equal(t, http.StatusNotFound, status, "%s %s: %s", req.method, req.path, body)
	}

	status, body = api.do(http.MethodGet, txPath, ann, nil)
	require.Equal(t, http.StatusOK, status)
	var gotTx models.Transaction
	api.decode(body, &gotTx)
	assert.Equal(t, "12.00", gotTx.Amount.String())
	assert.Equal(t, food.ID, gotTx.CategoryID)

	status, body = api.do(http.MethodGet, budgetPath, ann, nil)
	require.Equal(t, http.StatusOK, status)
	var gotBudget models.Budget
	api.decode(body, &gotBudget)
	assert.Equal(t, "100.00", gotBudget.Amount.String())
	assert.Equal(t, "2024-05-01", gotBudget.StartDate.String())

	status, body = api.do(http.MethodGet, notePath, ann, nil)
	require.Equal(t, http.StatusOK, status)
	var gotNote models.Notification
	api.decode(body, &gotNote)
	assert.False(t, gotNote.IsRead)
}
