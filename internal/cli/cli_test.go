package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	pkgerrors "github.com/matzehuels/degrees/pkg/errors"
	"github.com/matzehuels/degrees/pkg/observability"
	"github.com/matzehuels/degrees/pkg/report"
)

// isolate points config and cache lookups at fresh temp directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	var logs bytes.Buffer
	c := New(&logs, log.DebugLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func writeEdgeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	for _, name := range []string{"analyze", "path", "cache", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config should be a persistent flag")
	}
}

func TestAnalyzeWritesReport(t *testing.T) {
	isolate(t)
	edges := writeEdgeList(t, "node_1,node_2\na,b\nb,c\nc,d\n")
	out := filepath.Join(t.TempDir(), "report.json")

	err := execute(t, "analyze", edges, "--undirected", "--workers", "2", "--threshold", "2", "--json", "-o", out)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rep, err := report.Read(f)
	if err != nil {
		t.Fatal(err)
	}

	if rep.Nodes != 4 || !rep.Undirected || !rep.Symmetric {
		t.Errorf("report = %+v", rep)
	}
	if rep.Stats.Pairs != 12 || rep.Stats.Threshold != 2 || rep.Workers != 2 {
		t.Errorf("stats = %+v", rep.Stats)
	}
}

func TestAnalyzeEscapedDelimiterAndZeroThreshold(t *testing.T) {
	isolate(t)
	edges := writeEdgeList(t, "node_1\tnode_2\na\tb\nb\tc\n")
	out := filepath.Join(t.TempDir(), "report.json")

	err := execute(t, "analyze", edges, "--delimiter", `\t`, "--threshold", "0", "--no-cache", "--json", "-o", out)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := report.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Nodes != 3 || rep.Stats.Pairs != 3 {
		t.Errorf("nodes, pairs = %d, %d, want 3, 3", rep.Nodes, rep.Stats.Pairs)
	}
	if rep.Stats.Threshold != 0 || rep.Stats.PercentageWithin == nil || *rep.Stats.PercentageWithin != 0 {
		t.Errorf("threshold, within = %d, %v, want 0, 0", rep.Stats.Threshold, rep.Stats.PercentageWithin)
	}
}

func TestAnalyzeUsesConfig(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "delimiter = \";\"\nheader = false\n\n[cache]\nbackend = \"none\"\n")
	edges := writeEdgeList(t, "a;b\nb;a\n")
	out := filepath.Join(t.TempDir(), "report.json")

	if err := execute(t, "--config", cfg, "analyze", edges, "--json", "-o", out); err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := report.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Nodes != 2 || rep.Stats.Pairs != 2 {
		t.Errorf("nodes, pairs = %d, %d, want 2, 2", rep.Nodes, rep.Stats.Pairs)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	isolate(t)

	err := execute(t, "analyze", filepath.Join(t.TempDir(), "missing.csv"))
	if !pkgerrors.Is(err, pkgerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v", err)
	}

	err = execute(t, "analyze", writeEdgeList(t, "h,h\na\n"))
	if !pkgerrors.Is(err, pkgerrors.ErrCodeInvalidFormat) {
		t.Errorf("bad input: got %v", err)
	}

	err = execute(t, "analyze", writeEdgeList(t, "h,h\na,b\n"), "--threshold=-1")
	if !pkgerrors.Is(err, pkgerrors.ErrCodeInvalidInput) {
		t.Errorf("bad threshold: got %v", err)
	}
}

func TestPathCommand(t *testing.T) {
	isolate(t)
	edges := writeEdgeList(t, "h,h\na,b\nb,c\n")

	if err := execute(t, "path", edges, "a", "c"); err != nil {
		t.Errorf("path a c: %v", err)
	}
	// Directed: c cannot reach a, which is not an error.
	if err := execute(t, "path", edges, "c", "a"); err != nil {
		t.Errorf("path c a: %v", err)
	}

	err := execute(t, "path", edges, "a", "zed")
	if !pkgerrors.Is(err, pkgerrors.ErrCodeNotFound) {
		t.Errorf("unknown node: got %v", err)
	}
}

func TestCacheClear(t *testing.T) {
	isolate(t)
	edges := writeEdgeList(t, "h,h\na,b\nb,a\n")

	if err := execute(t, "analyze", edges, "--json"); err != nil {
		t.Fatal(err)
	}
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("cache dir should exist after analyze: %v", err)
	}

	if err := execute(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear: %v", err)
	}
	if err := execute(t, "cache", "path"); err != nil {
		t.Errorf("cache path: %v", err)
	}
}

func TestCompletionWritesScript(t *testing.T) {
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(&bytes.Buffer{})
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out.String(), "degrees") {
				t.Errorf("completion %s script does not mention degrees", shell)
			}
		})
	}

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("unsupported shell should fail")
	}
}
