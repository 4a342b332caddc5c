package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/covnotify/pkg/cli"
	"github.com/m-mizutani/gt"
)

func circleEnv() map[string]string {
	return map[string]string{
		"CI_PULL_REQUEST":         "https://github.com/tastyworks/order-api/pull/88",
		"CIRCLE_SHA1":             "9fc29099caa165efef809d67fc274abba5c8c8fa",
		"CIRCLE_PROJECT_USERNAME": "tastyworks",
		"CIRCLE_PROJECT_REPONAME": "order-api",
		"CIRCLE_USERNAME":         "octocat",
		"CIRCLE_BUILD_NUM":        "458",
		"CIRCLE_ARTIFACTS":        "0/artifacts",
	}
}

func writeLastRun(t *testing.T, percent string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".last_run.json")
	gt.NoError(t, os.WriteFile(path, []byte(`{"result":{"covered_percent":`+percent+`}}`), 0644))
	return path
}

func TestRun_ReportDryRun(t *testing.T) {
	color.NoColor = true
	lastRun := writeLastRun(t, "100")

	var out bytes.Buffer
	err := cli.Run(context.Background(),
		[]string{"covnotify", "report", "--dry-run", "--percent", "50", "--last-run-file", lastRun},
		cli.WithEnv(circleEnv()),
		cli.WithOutput(&out),
	)
	gt.NoError(t, err)

	gt.String(t, out.String()).Contains("[failure] coverage-notifications")
	gt.String(t, out.String()).Contains("Code coverage dropped by 50%.")
	gt.String(t, out.String()).Contains("comment tastyworks/order-api#88")
	gt.String(t, out.String()).Contains("*50%* code coverage drop from *100%* to *50%*")
}

func TestRun_ReportWithoutBaseline(t *testing.T) {
	var out bytes.Buffer
	lastRun := filepath.Join(t.TempDir(), ".last_run.json")

	err := cli.Run(context.Background(),
		[]string{"covnotify", "report", "--dry-run", "--percent", "98", "--last-run-file", lastRun, "--save"},
		cli.WithEnv(circleEnv()),
		cli.WithOutput(&out),
	)
	gt.NoError(t, err)
	gt.Equal(t, out.String(), "")

	data, err := os.ReadFile(lastRun)
	gt.NoError(t, err)
	gt.String(t, string(data)).Contains(`"covered_percent": 98`)
}

func TestRun_ReportToGitHub(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]int{"id": 1})
	}))
	defer server.Close()

	lastRun := writeLastRun(t, "23")
	err := cli.Run(context.Background(),
		[]string{"covnotify", "report",
			"--percent", "98",
			"--last-run-file", lastRun,
			"--github-token", "ghp_test",
			"--github-base-url", server.URL,
		},
		cli.WithEnv(circleEnv()),
	)
	gt.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	gt.Equal(t, paths, []string{"/repos/tastyworks/order-api/statuses/9fc29099caa165efef809d67fc274abba5c8c8fa"})
}

func TestRun_ReportGitHubFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	lastRun := writeLastRun(t, "100")
	err := cli.Run(context.Background(),
		[]string{"covnotify", "report",
			"--percent", "50",
			"--last-run-file", lastRun,
			"--github-token", "bad",
			"--github-base-url", server.URL,
			"--save",
		},
		cli.WithEnv(circleEnv()),
	)
	gt.Error(t, err)

	data, err := os.ReadFile(lastRun)
	gt.NoError(t, err)
	gt.String(t, string(data)).Contains(`"covered_percent":100`)
}

func TestRun_ReportRequiresCredentials(t *testing.T) {
	err := cli.Run(context.Background(),
		[]string{"covnotify", "report", "--percent", "50", "--last-run-file", writeLastRun(t, "60")},
		cli.WithEnv(map[string]string{}),
	)
	gt.Error(t, err)
}

func TestRun_ReportWithConfigFile(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	lastRun := writeLastRun(t, "40")
	configPath := filepath.Join(dir, "covnotify.toml")
	gt.NoError(t, os.WriteFile(configPath, []byte(`
[status]
context = "ci/coverage"

[last_run]
file = "`+filepath.ToSlash(lastRun)+`"
`), 0644))

	var out bytes.Buffer
	err := cli.Run(context.Background(),
		[]string{"covnotify", "report", "--config", configPath, "--dry-run", "--percent", "41.5"},
		cli.WithEnv(circleEnv()),
		cli.WithOutput(&out),
	)
	gt.NoError(t, err)
	gt.String(t, out.String()).Contains("[success] ci/coverage")
	gt.String(t, out.String()).Contains("Current code coverage is at 41.5%")
}

func TestRun_Baseline(t *testing.T) {
	lastRun := filepath.Join(t.TempDir(), "nested", ".last_run.json")

	var out bytes.Buffer
	gt.NoError(t, cli.Run(context.Background(),
		[]string{"covnotify", "baseline", "show", "--last-run-file", lastRun},
		cli.WithEnv(map[string]string{}),
		cli.WithOutput(&out),
	))
	gt.Equal(t, out.String(), "No baseline recorded\n")

	gt.NoError(t, cli.Run(context.Background(),
		[]string{"covnotify", "baseline", "save", "--percent", "72.25", "--last-run-file", lastRun},
		cli.WithEnv(map[string]string{}),
	))

	out.Reset()
	gt.NoError(t, cli.Run(context.Background(),
		[]string{"covnotify", "baseline", "show", "--last-run-file", lastRun},
		cli.WithEnv(map[string]string{}),
		cli.WithOutput(&out),
	))
	gt.Equal(t, out.String(), "Baseline coverage: 72.25%\n")
}

func TestRun_InvalidLogLevel(t *testing.T) {
	err := cli.Run(context.Background(),
		[]string{"covnotify", "--log-level", "loud", "baseline", "show"},
		cli.WithEnv(map[string]string{}),
	)
	gt.Error(t, err)
}
