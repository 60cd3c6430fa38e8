package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, d, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, d)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks yet. add a new task.\n" {
		t.Errorf("expected placeholder, got %q", stdout)
	}
	if !svc.Closed {
		t.Error("expected service to be closed after the command")
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, d, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "add", "toggle", "serve"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected help output to contain %q, got %q", want, stdout)
		}
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, d, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, d, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, d, "add", "--due")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -due\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"unknown kind", store.ErrUnknownKind, exitcode.ConfigError, "error: unknown store kind\n"},
		{"missing dsn", store.ErrMissingDSN, exitcode.ConfigError, "error: " + store.ErrMissingDSN.Error() + "\n"},
		{"read failure", errors.New("permission denied"), exitcode.StoreError, "error: store error: permission denied\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
				return nil, tt.err
			}
			d := cli.NewDispatcher(commands.DefaultRegistry, factory)

			_, stderr, code := run(t, d, "list")

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if stderr != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, stderr)
			}
		})
	}
}

// End to end through the real factory: each Run is a fresh process start.
func TestDispatcher_PersistsAcrossRuns(t *testing.T) {
	for _, kind := range []string{store.KindFile, store.KindSQLite} {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()
			d := cli.NewDispatcher(commands.DefaultRegistry, cli.NewStoreFactory(os.Stderr))
			common := []string{"--config", dir, "--store", kind}

			_, stderr, code := run(t, d, append([]string{"add"}, append(common, "--due", "2025-01-10", "Buy", "milk")...)...)
			if code != exitcode.Success {
				t.Fatalf("add failed: %d %s", code, stderr)
			}
			_, stderr, code = run(t, d, append([]string{"add"}, append(common, "Walk dog")...)...)
			if code != exitcode.Success {
				t.Fatalf("add failed: %d %s", code, stderr)
			}
			_, stderr, code = run(t, d, append([]string{"toggle"}, append(common, "2")...)...)
			if code != exitcode.Success {
				t.Fatalf("toggle failed: %d %s", code, stderr)
			}

			stdout, _, code := run(t, d, append([]string{"list"}, common...)...)
			if code != exitcode.Success {
				t.Fatalf("list failed: %d", code)
			}
			expected := "   1  [ ] Buy milk  (due 2025-01-10)\n   2  [x] Walk dog\n"
			if stdout != expected {
				t.Errorf("expected %q, got %q", expected, stdout)
			}

			_, _, code = run(t, d, append([]string{"rm"}, append(common, "1")...)...)
			if code != exitcode.Success {
				t.Fatalf("rm failed: %d", code)
			}
			stdout, _, _ = run(t, d, append([]string{"list"}, common...)...)
			if stdout != "   1  [x] Walk dog\n" {
				t.Errorf("expected one task left, got %q", stdout)
			}
		})
	}
}

func TestDispatcher_CorruptFileRestoresEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, cli.NewStoreFactory(os.Stderr))

	stdout, stderr, code := run(t, d, "list", "--config", dir)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks yet. add a new task.\n" {
		t.Errorf("expected placeholder, got %q", stdout)
	}

	b, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[]" {
		t.Errorf("expected corrupt blob to be replaced by [], got %q", b)
	}
}
