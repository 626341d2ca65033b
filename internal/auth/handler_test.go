package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caredesk-hq/caredesk/internal/auth"
	"github.com/caredesk-hq/caredesk/internal/rbac"
)

func newTestServer(t *testing.T, records map[string]*auth.IdentityRecord) (*httptest.Server, *auth.Manager) {
	t.Helper()
	manager, _, _ := newManager(records)
	handler := auth.NewHandler(nil, manager)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		handler.MountRoutes(r, nil)
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, manager
}

func postJSON(t *testing.T, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func TestLoginSuccess(t *testing.T) {
	server, _ := newTestServer(t, map[string]*auth.IdentityRecord{
		"dewi@example.com": {CustomerID: 7, Name: "Dewi", Email: "dewi@example.com"},
	})

	res := postJSON(t, server.URL+"/auth/login", "", `{"email":"dewi@example.com"}`)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var payload struct {
		Token   string `json:"token"`
		Session struct {
			Authenticated bool   `json:"authenticated"`
			CustomerID    int64  `json:"customer_id"`
			Role          string `json:"role"`
		} `json:"session"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.NotEmpty(t, payload.Token)
	assert.True(t, payload.Session.Authenticated)
	assert.Equal(t, int64(7), payload.Session.CustomerID)
	assert.Equal(t, "customer", payload.Session.Role)
}

func TestLoginUnknownIdentity(t *testing.T) {
	server, _ := newTestServer(t, nil)

	res := postJSON(t, server.URL+"/auth/login", "", `{"email":"ghost@example.com"}`)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestLoginInvalidPayload(t *testing.T) {
	server, _ := newTestServer(t, nil)

	res := postJSON(t, server.URL+"/auth/login", "", `{"email":"not-an-email"}`)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = postJSON(t, server.URL+"/auth/login", "", `{`)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLogoutEndpoint(t *testing.T) {
	server, manager := newTestServer(t, map[string]*auth.IdentityRecord{
		"dewi@example.com": {CustomerID: 7, Email: "dewi@example.com"},
	})
	sess, err := manager.Authenticate(context.Background(), "dewi@example.com", "", "")
	require.NoError(t, err)

	res := postJSON(t, server.URL+"/auth/logout", sess.Token, "")
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var payload map[string]bool
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.True(t, payload["logged_out"])

	// Second logout with the same token reports false.
	res = postJSON(t, server.URL+"/auth/logout", sess.Token, "")
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.False(t, payload["logged_out"])
}

func TestSessionEndpointFallsBackToGuest(t *testing.T) {
	server, _ := newTestServer(t, nil)

	res, err := http.Get(server.URL + "/auth/session")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var payload struct {
		Authenticated bool   `json:"authenticated"`
		Role          string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.False(t, payload.Authenticated)
	assert.Equal(t, "guest", payload.Role)
}

func TestCheckEndpoint(t *testing.T) {
	server, manager := newTestServer(t, map[string]*auth.IdentityRecord{
		"dewi@example.com": {CustomerID: 7, Email: "dewi@example.com"},
	})
	sess, err := manager.Authenticate(context.Background(), "dewi@example.com", "", "")
	require.NoError(t, err)

	res := postJSON(t, server.URL+"/auth/check", sess.Token, `{"operation":"read_orders","target_customer_id":7}`)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var decision struct {
		Authorized bool `json:"authorized"`
		Scope      *struct {
			Kind       string `json:"kind"`
			CustomerID int64  `json:"customer_id"`
		} `json:"scope"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decision))
	assert.True(t, decision.Authorized)
	require.NotNil(t, decision.Scope)
	assert.Equal(t, string(rbac.ScopeCustomerSpecific), decision.Scope.Kind)
	assert.Equal(t, int64(7), decision.Scope.CustomerID)

	res = postJSON(t, server.URL+"/auth/check", sess.Token, `{"operation":"read_orders","target_customer_id":9}`)
	defer res.Body.Close()
	var denied struct {
		Authorized bool   `json:"authorized"`
		Reason     string `json:"reason"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&denied))
	assert.False(t, denied.Authorized)
	assert.Contains(t, denied.Reason, "other customers")
}
