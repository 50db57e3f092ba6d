package report

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/timet/internal/config"
	"github.com/penwyp/timet/internal/core/model"
	"github.com/penwyp/timet/internal/core/period"
	"github.com/penwyp/timet/internal/data/client"
	"github.com/penwyp/timet/internal/presentation/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioBody = `{"entries": [
  {"dayOfYear": 61, "year": 2024, "month": 3, "week": 9, "hours": 3.0, "projectName": "Alpha", "projectId": "A"},
  {"dayOfYear": 62, "year": 2024, "month": 3, "week": 9, "hours": 2.0, "projectName": "Beta", "projectId": "B"},
  {"dayOfYear": 63, "year": 2024, "month": 3, "week": 9, "hours": 1.5, "projectName": "Alpha", "projectId": "A"}
]}`

type testServer struct {
	*httptest.Server
	calls   atomic.Int32
	lastURL atomic.Value
	lastKey atomic.Value
}

func newTestServer(t *testing.T, status int, body string) *testServer {
	t.Helper()
	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.calls.Add(1)
		ts.lastURL.Store(r.URL.String())
		ts.lastKey.Store(r.Header.Get(model.HeaderAPIKey))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func writeConfig(t *testing.T, dir string, cfg map[string]interface{}) string {
	t.Helper()
	data, err := sonic.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func run(t *testing.T, cfg *Config) (string, error) {
	t.Helper()
	if cfg.Now == nil {
		cfg.Now = fixedNow
	}
	var out, errOut bytes.Buffer
	err := New(cfg, &out, &errOut).Run(context.Background())
	return out.String(), err
}

func TestRunPlainFromConfig(t *testing.T) {
	server := newTestServer(t, http.StatusOK, scenarioBody)
	path := writeConfig(t, t.TempDir(), map[string]interface{}{
		"url": server.URL + "/hours", "key": "secret", "template": nil,
	})

	out, err := run(t, &Config{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "Alpha 4.5t\nBeta 2.0t\nTotalt - 6.5t\n", out)
	assert.Equal(t, "/hours?month=3&year=2024", server.lastURL.Load())
	assert.Equal(t, "secret", server.lastKey.Load())
}

func TestRunFagdag(t *testing.T) {
	server := newTestServer(t, http.StatusOK, scenarioBody)

	out, err := run(t, &Config{URL: server.URL, APIKey: "k", Fagdag: true})
	require.NoError(t, err)
	assert.Equal(t, "En stk fagdag\nAlpha 4.5t\nBeta 2.0t\nTotalt - 6.5t\n", out)
}

func TestRunMissingConfigSendsNoRequest(t *testing.T) {
	server := newTestServer(t, http.StatusOK, scenarioBody)

	out, err := run(t, &Config{
		ConfigPath: filepath.Join(t.TempDir(), config.FileName),
		URL:        server.URL,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigMissing)
	assert.Empty(t, out)
	assert.Zero(t, server.calls.Load())
}

func TestRunOverridesSkipConfigFile(t *testing.T) {
	server := newTestServer(t, http.StatusOK, scenarioBody)

	out, err := run(t, &Config{
		ConfigPath: filepath.Join(t.TempDir(), config.FileName),
		URL:        server.URL,
		APIKey:     "from-env",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Totalt - 6.5t")
	assert.Equal(t, "from-env", server.lastKey.Load())
}

func TestRunKeyOverrideKeepsConfigURL(t *testing.T) {
	server := newTestServer(t, http.StatusOK, scenarioBody)
	path := writeConfig(t, t.TempDir(), map[string]interface{}{
		"url": server.URL, "key": "from-file",
	})

	_, err := run(t, &Config{ConfigPath: path, APIKey: "from-flag"})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", server.lastKey.Load())
}

func TestRunExplicitPeriod(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"entries": []}`)
	month, year := 12, 2023

	out, err := run(t, &Config{URL: server.URL, APIKey: "k", Month: &month, Year: &year})
	require.NoError(t, err)
	assert.Equal(t, "Totalt - 0.0t\n", out)
	assert.Equal(t, "/?month=12&year=2023", server.lastURL.Load())
}

func TestRunInvalidMonth(t *testing.T) {
	server := newTestServer(t, http.StatusOK, scenarioBody)
	month := 13

	_, err := run(t, &Config{URL: server.URL, APIKey: "k", Month: &month})
	assert.ErrorIs(t, err, period.ErrInvalidDate)
	assert.Zero(t, server.calls.Load())
}

func TestRunFetchFailurePrintsNothing(t *testing.T) {
	server := newTestServer(t, http.StatusInternalServerError, "down")

	out, err := run(t, &Config{URL: server.URL, APIKey: "k"})
	assert.ErrorIs(t, err, client.ErrFetch)
	assert.Empty(t, out)
}

func TestRunTemplateFromConfig(t *testing.T) {
	server := newTestServer(t, http.StatusOK, scenarioBody)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "report.tmpl"),
		[]byte(`{{ norwegian_month .month }}:{{ range .hours }} {{ .Name }}={{ .Hours }}{{ end }} total={{ .total }}`), 0644))
	path := writeConfig(t, dir, map[string]interface{}{
		"url": server.URL, "key": "k", "template": "templates/report.tmpl",
	})

	out, err := run(t, &Config{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "Mars: Alpha=4.5 Beta=2 total=6.5", out)
}

func TestRunExplicitOutputBeatsTemplate(t *testing.T) {
	server := newTestServer(t, http.StatusOK, scenarioBody)
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]interface{}{
		"url": server.URL, "key": "k", "template": "missing.tmpl",
	})

	out, err := run(t, &Config{ConfigPath: path, Output: model.OutputJSON})
	require.NoError(t, err)

	var rep model.Report
	require.NoError(t, sonic.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 3, rep.Month)
	assert.InDelta(t, 6.5, rep.Total, 1e-9)
}

func TestRunMissingTemplateFailsBeforeFetch(t *testing.T) {
	server := newTestServer(t, http.StatusOK, scenarioBody)

	out, err := run(t, &Config{
		URL:          server.URL,
		APIKey:       "k",
		TemplatePath: filepath.Join(t.TempDir(), "nope.tmpl"),
	})
	assert.ErrorIs(t, err, formatter.ErrTemplate)
	assert.Empty(t, out)
	assert.Zero(t, server.calls.Load())
}

func TestRunWatchRequiresTemplate(t *testing.T) {
	server := newTestServer(t, http.StatusOK, scenarioBody)

	_, err := run(t, &Config{URL: server.URL, APIKey: "k", Watch: true})
	assert.Error(t, err)
	assert.Zero(t, server.calls.Load())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"table", Config{Output: model.OutputTable}, false},
		{"unknown output", Config{Output: "yaml"}, true},
		{"watch with explicit output", Config{Output: model.OutputPlain, Watch: true}, true},
		{"negative timeout", Config{Timeout: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type stubSource struct {
	entries []model.TimeEntry
}

func (s stubSource) FetchEntries(ctx context.Context, year, month int) ([]model.TimeEntry, error) {
	return s.entries, nil
}

func TestRunWithStubSourceTable(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(&Config{URL: "http://unused", APIKey: "k", Output: model.OutputTable, Width: 80, Now: fixedNow}, &out, &errOut)
	r.newSource = func(url, key string) EntrySource {
		return stubSource{entries: []model.TimeEntry{
			{Hours: 5.0, ProjectID: "z", ProjectName: "Zeta"},
			{Hours: 5.05, ProjectID: "a", ProjectName: "Alpha"},
		}}
	}

	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "Mars 2024")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Alpha")), bytes.Index(out.Bytes(), []byte("Zeta")))
}
