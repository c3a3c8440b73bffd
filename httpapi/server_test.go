package httpapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankist/app"
	"bankist/domain"
	"bankist/httpapi"
	"bankist/shared"
	"bankist/store"
)

type envelope struct {
	OK      bool              `json:"ok"`
	Reason  string            `json:"reason"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	at := time.Date(2022, 1, 15, 10, 0, 0, 0, time.UTC)
	history := func(amounts ...string) []domain.Movement {
		out := make([]domain.Movement, len(amounts))
		for i, a := range amounts {
			out[i] = domain.NewMovement(dec(a), at.AddDate(0, 0, i-len(amounts)))
		}
		return out
	}
	jonas, err := domain.NewAccount("Jonas Schmedtmann", 1111, dec("1.2"), shared.EUR, shared.PtPT,
		history("200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300"))
	require.NoError(t, err)
	jessica, err := domain.NewAccount("Jessica Davis", 2222, dec("1.5"), shared.USD, shared.EnUS,
		history("5000", "3400", "-150", "-790", "-3210", "-1000", "8500", "-30"))
	require.NoError(t, err)

	logger := log.New(io.Discard)
	service := app.NewLedgerService(store.NewInMemoryAccountStore(), store.NewInMemoryEventStore(), nil, logger)
	require.NoError(t, service.Seed([]*domain.Account{jonas, jessica}))
	return httpapi.NewRouter(service, logger)
}

func do(t *testing.T, router http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp), recorder.Body.String())
	return recorder.Code, resp
}

func TestHealth(t *testing.T) {
	code, resp := do(t, newRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.OK)
}

func TestLogin(t *testing.T) {
	router := newRouter(t)

	code, resp := do(t, router, http.MethodPost, "/login", `{"identifier":"js","pin":1111}`)
	require.Equal(t, http.StatusOK, code)
	require.True(t, resp.OK)

	var result app.LoginResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "Jonas", result.DisplayName)
	assert.Equal(t, "js", result.Identifier)

	code, resp = do(t, router, http.MethodPost, "/login", `{"identifier":"js","pin":2222}`)
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Reason, "invalid identifier or pin")
}

func TestBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		detail string
	}{
		{name: "malformed json", path: "/login", body: `{"identifier":`},
		{name: "missing identifier", path: "/login", body: `{"pin":1111}`, detail: "Identifier"},
		{name: "negative pin", path: "/close", body: `{"identifier":"js","pin":-1}`, detail: "PIN"},
		{name: "missing receiver", path: "/transfer", body: `{"amount":"10"}`, detail: "To"},
		{name: "non numeric amount", path: "/loan", body: `{"amount":"lots"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := do(t, newRouter(t), http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, resp.OK)
			if tt.detail != "" {
				assert.Contains(t, resp.Details, tt.detail)
			}
		})
	}
}

func TestTransferFlow(t *testing.T) {
	router := newRouter(t)

	_, resp := do(t, router, http.MethodPost, "/transfer", `{"to":"jd","amount":"100"}`)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Reason, "no account is logged in")

	_, resp = do(t, router, http.MethodPost, "/login", `{"identifier":"js","pin":1111}`)
	require.True(t, resp.OK)

	_, resp = do(t, router, http.MethodPost, "/transfer", `{"to":"jd","amount":100}`)
	require.True(t, resp.OK, resp.Reason)

	_, resp = do(t, router, http.MethodPost, "/transfer", `{"to":"js","amount":"5"}`)
	assert.False(t, resp.OK)

	_, resp = do(t, router, http.MethodPost, "/transfer", `{"to":"jd","amount":"1000000"}`)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Reason, "insufficient funds")

	_, resp = do(t, router, http.MethodGet, "/view", "")
	require.True(t, resp.OK)
	var v struct {
		Balance decimal.Decimal `json:"balance"`
		Rows    []struct {
			Index int    `json:"index"`
			Type  string `json:"type"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &v))
	assert.True(t, dec("25852.59").Equal(v.Balance), v.Balance.String())
	require.Len(t, v.Rows, 9)
	assert.Equal(t, "withdrawal", v.Rows[8].Type)

	_, resp = do(t, router, http.MethodGet, "/history?limit=5", "")
	require.True(t, resp.OK)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	assert.Len(t, history, 1)

	_, resp = do(t, router, http.MethodPost, "/transfer", `{"to":"jd","amount":"1"}`)
	require.True(t, resp.OK, resp.Reason)
	code, resp := do(t, router, http.MethodGet, "/history?skip=1&limit=9223372036854775807", "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, resp.OK, resp.Reason)
	history = nil
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	assert.Len(t, history, 1)

	code, _ = do(t, router, http.MethodGet, "/history?skip=abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLoanSortCloseLogout(t *testing.T) {
	router := newRouter(t)

	_, resp := do(t, router, http.MethodPost, "/sort", "")
	require.True(t, resp.OK)
	assert.JSONEq(t, `{"sorted":true}`, string(resp.Data))

	_, resp = do(t, router, http.MethodPost, "/login", `{"identifier":"jd","pin":2222}`)
	require.True(t, resp.OK)

	_, resp = do(t, router, http.MethodPost, "/loan", `{"amount":"1000.9"}`)
	require.True(t, resp.OK, resp.Reason)
	var granted struct {
		Granted decimal.Decimal `json:"granted"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &granted))
	assert.True(t, dec("1000").Equal(granted.Granted))

	_, resp = do(t, router, http.MethodPost, "/loan", `{"amount":"1000000"}`)
	assert.False(t, resp.OK)
	assert.Equal(t, "no deposit of at least 10% of the requested loan: requested 1000000, needs a deposit of 100000", resp.Reason)

	_, resp = do(t, router, http.MethodPost, "/close", `{"identifier":"jd","pin":1111}`)
	assert.False(t, resp.OK)

	_, resp = do(t, router, http.MethodPost, "/close", `{"identifier":"jd","pin":2222}`)
	require.True(t, resp.OK, resp.Reason)

	_, resp = do(t, router, http.MethodPost, "/login", `{"identifier":"jd","pin":2222}`)
	assert.False(t, resp.OK)

	_, resp = do(t, router, http.MethodPost, "/login", `{"identifier":"js","pin":1111}`)
	require.True(t, resp.OK)
	_, resp = do(t, router, http.MethodPost, "/logout", "")
	require.True(t, resp.OK)
	_, resp = do(t, router, http.MethodGet, "/view", "")
	assert.False(t, resp.OK)
}

func TestServerLifecycle(t *testing.T) {
	service := app.NewLedgerService(store.NewInMemoryAccountStore(), store.NewInMemoryEventStore(), nil, log.New(io.Discard))
	server := httpapi.NewServer(service, log.New(io.Discard), httpapi.Config{Addr: "127.0.0.1:0"})

	require.NoError(t, server.Start(context.Background()))
	addr := server.Addr()
	require.NotEqual(t, "127.0.0.1:0", addr)

	res, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, server.Stop(ctx))

	_, err = http.Get("http://" + addr + "/health")
	assert.Error(t, err)
}

func TestServerStartBindFailure(t *testing.T) {
	server := httpapi.NewServer(nil, log.New(io.Discard), httpapi.Config{Addr: "127.0.0.1:99999"})
	assert.Error(t, server.Start(context.Background()))
}
