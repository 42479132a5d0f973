package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/laakri/DevCollab/internal/app"
	"github.com/laakri/DevCollab/internal/config"
	"github.com/laakri/DevCollab/internal/email"
	"github.com/laakri/DevCollab/internal/testutil"
)

const testJWTSecret = "integration-test-secret"

// TestServer runs the full router against a private SQLite database.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Mail   *testutil.RecordingProvider
	Config *config.Config
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = config.EnvTest
	cfg.Server.CORSOrigins = []string{"http://localhost:5173"}
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.TTL = time.Hour
	cfg.JWT.VerificationTTL = 24 * time.Hour
	cfg.App.FrontendURL = "http://localhost:5173"
	return cfg
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	db := testutil.NewTestDB(t)
	mail := testutil.NewRecordingProvider()

	server := httptest.NewServer(app.SetupRouter(cfg, db, mail))
	t.Cleanup(server.Close)

	return &TestServer{Server: server, DB: db, Mail: mail, Config: cfg}
}

// SendRequest sends body as JSON and returns the response with its body.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(resBody)
}

// Register signs up a user and returns the access token from the response.
func (ts *TestServer) Register(t *testing.T, emailAddr, username string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"email":    emailAddr,
		"username": username,
		"password": testutil.DefaultPassword,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

// VerificationToken waits for the verification mail to emailAddr and
// extracts the token from its link.
func (ts *TestServer) VerificationToken(t *testing.T, emailAddr string) string {
	t.Helper()

	sent := ts.Mail.WaitFor(t, email.TemplateVerification, emailAddr)
	link, ok := sent.Data["VerificationLink"].(string)
	require.True(t, ok)

	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

// Login returns an access token for a verified user.
func (ts *TestServer) Login(t *testing.T, emailAddr string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    emailAddr,
		"password": testutil.DefaultPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &tokens))
	return tokens.AccessToken
}

// SignUp registers and verifies a user, then logs them in.
func (ts *TestServer) SignUp(t *testing.T, emailAddr, username string) string {
	t.Helper()

	ts.Register(t, emailAddr, username)
	token := ts.VerificationToken(t, emailAddr)
	res, body := ts.SendRequest(t, http.MethodGet, "/api/users/verify-email?token="+url.QueryEscape(token), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	return ts.Login(t, emailAddr)
}

type apiError struct {
	Error struct {
		Code    string      `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, body string) apiError {
	t.Helper()

	var e apiError
	require.NoError(t, json.Unmarshal([]byte(body), &e), body)
	return e
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v), body)
	return v
}
