package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agents-at-scale/ark-cli/internal/config"
	"github.com/agents-at-scale/ark-cli/internal/exitcode"
	"github.com/agents-at-scale/ark-cli/internal/runner"
	runnertesting "github.com/agents-at-scale/ark-cli/internal/runner/testing"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, fake *runnertesting.FakeRunner, environ []string, args ...string) result {
	t.Helper()
	Configure(CLIOptions{
		Runner:     fake,
		Environ:    environ,
		ConfigDirs: []string{t.TempDir()},
	})
	t.Cleanup(func() { Configure(CLIOptions{}) })

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	code := run(context.Background(), root)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRun_DeleteQuery(t *testing.T) {
	fake := runnertesting.NewFakeRunner()
	fake.Result = runner.Result{Stdout: "query.ark.mckinsey.com \"q1\" deleted\n"}

	res := execute(t, fake, []string{}, "queries", "delete", "q1")

	assert.Equal(t, exitcode.Success, res.code)
	assert.Equal(t, "query.ark.mckinsey.com \"q1\" deleted\n", res.stdout)
	assert.Empty(t, res.stderr)
	require.Equal(t, 1, fake.CallCount())
	assert.Equal(t, "kubectl", fake.LastCall().Program)
	assert.Equal(t, []string{"delete", "queries", "q1"}, fake.LastCall().Args)
}

func TestRun_DeleteQueryUsageError(t *testing.T) {
	fake := runnertesting.NewFakeRunner()

	res := execute(t, fake, []string{}, "query", "delete")

	assert.Equal(t, exitcode.CliError, res.code)
	assert.Equal(t, "Error: Either provide a query name or use --all flag\n", res.stderr)
	assert.NotContains(t, res.stderr, "Warning")
	assert.Zero(t, fake.CallCount())
}

func TestRun_DeleteQueryFailure(t *testing.T) {
	fake := runnertesting.NewFakeRunner()
	fake.Err = &runner.Error{
		Program: "kubectl",
		Stderr:  "Error from server (NotFound): queries.ark.mckinsey.com \"q1\" not found\n",
		Err:     errors.New("exit status 1"),
	}

	res := execute(t, fake, []string{}, "queries", "delete", "q1")

	assert.Equal(t, exitcode.CliError, res.code)
	assert.Equal(t, "Error: deleting query: Error from server (NotFound): queries.ark.mckinsey.com \"q1\" not found\n", res.stderr)
}

func TestRun_FlagsOverrideEnvironment(t *testing.T) {
	fake := runnertesting.NewFakeRunner()

	res := execute(t, fake, []string{"ARK_KUBECTL_PATH=/env/kubectl"}, "--kubectl", "/flag/kubectl", "agents", "delete", "--all")
	assert.Equal(t, exitcode.Success, res.code)
	assert.Equal(t, "/flag/kubectl", fake.LastCall().Program)

	res = execute(t, fake, []string{"ARK_KUBECTL_PATH=/env/kubectl"}, "agents", "delete", "--all")
	assert.Equal(t, exitcode.Success, res.code)
	assert.Equal(t, "/env/kubectl", fake.LastCall().Program)
}

func TestRun_UnexpectedErrors(t *testing.T) {
	tests := []struct {
		name       string
		environ    []string
		args       []string
		wantStderr string
	}{
		{
			name:       "unknown command",
			args:       []string{"frobnicate"},
			wantStderr: "unknown command",
		},
		{
			name:       "too many args",
			args:       []string{"queries", "delete", "a", "b"},
			wantStderr: "accepts at most 1 arg",
		},
		{
			name:       "invalid config",
			environ:    []string{"ARK_VERBOSE=maybe"},
			args:       []string{"queries", "delete", "q1"},
			wantStderr: "Error: failed to parse config",
		},
		{
			name:       "invalid log level",
			args:       []string{"--log-level", "chatty", "queries", "delete", "q1"},
			wantStderr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := runnertesting.NewFakeRunner()
			environ := tt.environ
			if environ == nil {
				environ = []string{}
			}

			res := execute(t, fake, environ, tt.args...)
			assert.Equal(t, exitcode.CliError, res.code)
			assert.Contains(t, res.stderr, tt.wantStderr)
			assert.Zero(t, fake.CallCount())
		})
	}
}

func TestRun_MarketplaceInstall(t *testing.T) {
	fake := runnertesting.NewFakeRunner()

	res := execute(t, fake, []string{"ARK_HELM_PATH=/opt/helm"}, "install", "marketplace/services/phoenix")
	assert.Equal(t, exitcode.Success, res.code)
	assert.Contains(t, res.stdout, "✓ Installed phoenix into namespace phoenix")
	assert.Equal(t, "/opt/helm", fake.LastCall().Program)

	res = execute(t, fake, []string{}, "uninstall", "marketplace/agents/phoenix")
	assert.Equal(t, exitcode.CliError, res.code)
	assert.Contains(t, res.stderr, "Error: unknown marketplace item: marketplace/agents/phoenix")
}

func TestRun_Version(t *testing.T) {
	res := execute(t, runnertesting.NewFakeRunner(), []string{}, "version")
	assert.Equal(t, exitcode.Success, res.code)
	assert.Contains(t, res.stdout, "ark version dev")
}

func TestRun_ConfigInitIgnoresFlags(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, runnertesting.NewFakeRunner(), []string{"ARK_OUTPUT=json"},
		"--verbose", "--kubectl", "/flag/kubectl", "config", "init", "--dir", dir)
	require.Equal(t, exitcode.Success, res.code, res.stderr)

	data, err := os.ReadFile(filepath.Join(dir, config.FileName+".yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "debug")
	assert.NotContains(t, string(data), "/flag/kubectl")

	loaded, err := config.Load([]string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", loaded.LogLevel)
	assert.False(t, loaded.Verbose)
	assert.Equal(t, "json", loaded.Output)
}

func TestRun_VerboseKeepsConfiguredLogLevel(t *testing.T) {
	fake := runnertesting.NewFakeRunner()

	res := execute(t, fake, []string{}, "--verbose", "config", "show", "-o", "json")
	require.Equal(t, exitcode.Success, res.code, res.stderr)

	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &shown))
	assert.True(t, shown.Verbose)
	assert.Equal(t, "warn", shown.LogLevel)
}
