package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lassiter/cryptolang/internal/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const sampleSim = `
coin btc: generic_coin [initial_value = 100] {
}

trader alice: generic_trader [initial_money = 1000] {
}
`

func newTestAuth(t *testing.T, password string) Authenticator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return Authenticator{AdminUser: "admin", AdminPasswordHash: string(hash), JWTSecret: []byte("test-secret")}
}

func newTestServer(t *testing.T, password string) *Server {
	t.Helper()
	d, err := driver.New(sampleSim, rand.New(rand.NewSource(1)), 10)
	require.NoError(t, err)
	return New(newTestAuth(t, password), d, nil)
}

func TestLogin_CorrectPasswordIssuesToken(t *testing.T) {
	s := newTestServer(t, "hunter2")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/login", "application/json", strings.NewReader(`{"password":"hunter2"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Token)
}

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	s := newTestServer(t, "hunter2")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/login", "application/json", strings.NewReader(`{"password":"wrong"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStatus_RequiresBearerToken(t *testing.T) {
	s := newTestServer(t, "hunter2")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStatus_WithValidTokenReportsMarketState(t *testing.T) {
	s := newTestServer(t, "hunter2")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	tok, err := s.Auth.IssueToken("hunter2")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/status", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 10.0, body.EndTime)
	assert.Equal(t, 1, body.CoinCount)
	assert.Equal(t, 1, body.TraderCount)
}

func TestAgents_ListsCoinsAndTraders(t *testing.T) {
	s := newTestServer(t, "hunter2")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	tok, err := s.Auth.IssueToken("hunter2")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/agents", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var agents []agentSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&agents))
	require.Len(t, agents, 2)
}

func TestAgentHistory_WithoutRunLogIsNotFound(t *testing.T) {
	s := newTestServer(t, "hunter2")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	tok, err := s.Auth.IssueToken("hunter2")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/agents/"+s.Drv.Coins[0].ID.String()+"/history", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
