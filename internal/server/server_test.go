package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"paraphrase-be/internal/bootstrap"
	"paraphrase-be/internal/config"
	"paraphrase-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "*",
		},
		State: config.StateConfig{Store: "memory", SessionTTLMinutes: 5},
		Ai:    config.AIConfig{LLMProvider: "openai", LLMModel: "gpt-4", MaxTokens: 100},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig(t)
	c, err := bootstrap.NewContainer(nil, cfg)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return New(cfg, c)
}

func do(t *testing.T, s *Server, method, path, sid, body string) (*http.Response, serverutils.BaseResponse[json.RawMessage]) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.Header.Set(serverutils.SessionHeader, sid)
	}

	resp, err := s.GetApp().Test(req, -1)
	require.NoError(t, err)

	var out serverutils.BaseResponse[json.RawMessage]
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp, body := do(t, s, "GET", "/health", "", "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, body.Success)
}

func TestPersonas(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, "GET", "/api/personas?count=3", "", "")
	require.Equal(t, 200, resp.StatusCode)
	var personas []map[string]interface{}
	require.NoError(t, json.Unmarshal(body.Data, &personas))
	assert.Len(t, personas, 3)
	assert.NotEmpty(t, resp.Header.Get(serverutils.SessionHeader))

	resp, body = do(t, s, "GET", "/api/personas?count=0", "", "")
	assert.Equal(t, 400, resp.StatusCode)
	assert.Contains(t, body.Errors, "Count")

	resp, body = do(t, s, "POST", "/api/personas/constrained", "", `{"gender":"female","life_stage":"retired"}`)
	require.Equal(t, 200, resp.StatusCode)
	var p map[string]interface{}
	require.NoError(t, json.Unmarshal(body.Data, &p))
	assert.Equal(t, "female", p["gender"])
	assert.Equal(t, "Retired", p["life_stage_label"])

	resp, _ = do(t, s, "POST", "/api/personas/constrained", "", `{"gender":"robot"}`)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestWizardFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	sid := uuid.NewString()

	resp, _ := do(t, s, "GET", "/api/wizard", sid, "")
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, sid, resp.Header.Get(serverutils.SessionHeader))

	resp, body := do(t, s, "POST", "/api/wizard/context", sid, `{"name":"","context":""}`)
	assert.Equal(t, 200, resp.StatusCode)
	var rejected struct {
		Accepted bool `json:"accepted"`
		Wizard   struct {
			State struct {
				Errors struct {
					Context []string `json:"context"`
				} `json:"validation_errors"`
			} `json:"state"`
		} `json:"wizard"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &rejected))
	assert.False(t, rejected.Accepted)
	assert.Equal(t, []string{"Name is required", "Context is required"}, rejected.Wizard.State.Errors.Context)

	resp, _ = do(t, s, "POST", "/api/wizard/content", sid, `{"content":"x"}`)
	assert.Equal(t, 409, resp.StatusCode)

	resp, _ = do(t, s, "POST", "/api/wizard/context", sid, `{"name":"Ana","context":"teacher"}`)
	require.Equal(t, 200, resp.StatusCode)
	resp, _ = do(t, s, "POST", "/api/wizard/system", sid, `{"systemSettings":"macOS"}`)
	require.Equal(t, 200, resp.StatusCode)
	resp, _ = do(t, s, "POST", "/api/wizard/must-have", sid, "")
	require.Equal(t, 200, resp.StatusCode)
	resp, _ = do(t, s, "POST", "/api/wizard/content", sid, `{"content":"one\n\ntwo"}`)
	require.Equal(t, 200, resp.StatusCode)

	resp, _ = do(t, s, "PUT", "/api/wizard/step", sid, `{"step":"system"}`)
	assert.Equal(t, 200, resp.StatusCode)

	resp, _ = do(t, s, "PUT", "/api/wizard/sections/nope/collapsed", sid, `{"collapsed":true}`)
	assert.Equal(t, 404, resp.StatusCode)

	resp, _ = do(t, s, "PUT", "/api/wizard/sections/content/collapsed", sid, `{}`)
	assert.Equal(t, 400, resp.StatusCode)

	// no API key configured: the rewrite surfaces a configuration error
	// alongside the original paragraphs
	resp, body = do(t, s, "POST", "/api/rewrite", sid, "")
	assert.Equal(t, 503, resp.StatusCode)
	var rw struct {
		Result struct {
			OriginalParagraphs []string `json:"originalParagraphs"`
			MainError          string   `json:"mainError"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &rw))
	assert.Equal(t, []string{"one", "two"}, rw.Result.OriginalParagraphs)
	assert.Equal(t, "Rewrite backend not configured", rw.Result.MainError)

	resp, _ = do(t, s, "POST", "/api/wizard/reset", sid, "")
	assert.Equal(t, 200, resp.StatusCode)
}

func TestParaphraseValidation(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, "POST", "/api/paraphrase", "", `{"content":"  "}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Content is required", body.Message)

	resp, _ = do(t, s, "POST", "/api/paraphrase", "", `{"content":"hello"}`)
	assert.Equal(t, 503, resp.StatusCode)

	resp, body = do(t, s, "POST", "/api/device-info", "", `{}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "System settings are required", body.Message)
}
