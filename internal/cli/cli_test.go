package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/errors"
)

// votes is 3×"1,2,3", 2×"2,1,3" and 1×"3,1,2" behind a two-line header.
// STV eliminates 3, then 2, and elects 1.
const votes = `# FILE: test.toi
# CANDIDATES: 3
3: 1,2,3
2: 2,1,3
1: 3,1,2
`

// runCLI executes the root command with args and returns what the command
// printed to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// field returns the value printed by printKeyValue for key.
func field(out, key string) string {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == key {
			return strings.Join(fields[1:], " ")
		}
	}
	return ""
}

func TestTallyCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "votes.toi", votes)
	dot := filepath.Join(dir, "rounds.dot")

	out, err := runCLI(t, "tally", path, "--header-lines", "2", "-n", "3", "--dot", dot)
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if !strings.Contains(out, "Winner: candidate 1") {
		t.Errorf("output does not name the winner:\n%s", out)
	}
	if !strings.Contains(out, "Elimination order: 3 2 1") {
		t.Errorf("output does not show the elimination order:\n%s", out)
	}
	if !strings.Contains(out, "6 ballots") {
		t.Errorf("output does not show the ballot count:\n%s", out)
	}

	data, err := os.ReadFile(dot)
	if err != nil {
		t.Fatalf("dot file: %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph STV {") {
		t.Errorf("dot file starts with %q", string(data[:min(20, len(data))]))
	}
}

func TestTallyMissingFile(t *testing.T) {
	_, err := runCLI(t, "tally", filepath.Join(t.TempDir(), "missing.toi"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("tally error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestTallyEmptyProfile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.toi", "# header\n")
	_, err := runCLI(t, "tally", path, "--header-lines", "1", "-n", "3")
	if !errors.Is(err, errors.ErrCodeEmptyProfile) {
		t.Errorf("tally error = %v, want EMPTY_PROFILE", err)
	}
}

func TestManipulateCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "votes.toi", votes)
	outDir := filepath.Join(dir, "out")
	metrics := filepath.Join(dir, "coalition.prom")

	out, err := runCLI(t, "manipulate", path,
		"--header-lines", "2", "-n", "3",
		"-k", "0", "--attempts", "40", "--seed", "5",
		"-o", outDir, "--metrics-file", metrics)
	if err != nil {
		t.Fatalf("manipulate: %v", err)
	}
	if !strings.Contains(out, "Winner changed from 1 to") {
		t.Fatalf("no manipulation reported:\n%s", out)
	}

	original, err := os.ReadFile(filepath.Join(outDir, "original.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(original), "\n"); got != 6 {
		t.Errorf("original.txt has %d lines, want 6", got)
	}
	if _, err := os.Stat(filepath.Join(outDir, "manipulated.txt")); err != nil {
		t.Errorf("manipulated.txt: %v", err)
	}

	prom, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if !strings.Contains(string(prom), `coalition_searches_total{result="found"} 1`) {
		t.Errorf("metrics file lacks the found search:\n%s", prom)
	}
}

func TestManipulateNotFound(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "votes.toi", "5: 1,2,3\n")

	out, err := runCLI(t, "manipulate", path,
		"--header-lines", "0", "-n", "3",
		"-k", "0", "--max-size", "2", "--attempts", "5", "--backend", "none")
	if err != nil {
		t.Fatalf("manipulate: %v", err)
	}
	if !strings.Contains(out, "No manipulation found up to coalition size 2") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, "15 attempts over 3 coalition sizes") {
		t.Errorf("output lacks the attempt summary:\n%s", out)
	}
}

func TestManipulateInvalidFlags(t *testing.T) {
	path := writeFile(t, t.TempDir(), "votes.toi", votes)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"zero attempts", []string{"--attempts", "0"}, errors.ErrCodeInvalidConfig},
		{"zero workers", []string{"--workers", "0"}, errors.ErrCodeInvalidConfig},
		{"unknown backend", []string{"--backend", "s3"}, errors.ErrCodeInvalidConfig},
		{"size above profile", []string{"-k", "7"}, errors.ErrCodeInvalidCoalitionSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A later --backend overrides the first one.
			args := append([]string{"manipulate", path, "--header-lines", "2", "-n", "3", "--backend", "none"}, tt.args...)
			_, err := runCLI(t, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "original.txt", "1,2,3\n2,1,3\n3,1,2\n")
	b := writeFile(t, dir, "manipulated.txt", "1,2,3\n3,2,1\n3,1,2\n")

	out, err := runCLI(t, "compare", a, b)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if got := field(out, "Original"); got != "3 ballots" {
		t.Errorf("Original = %q, want %q", got, "3 ballots")
	}
	if got := field(out, "Changed"); got != "1" {
		t.Errorf("Changed = %q, want %q", got, "1")
	}
}

func TestOrdersCount(t *testing.T) {
	tests := []struct {
		candidates string
		want       string
	}{
		{"4", "24"},
		{"11", "39916800"},
		{"25", "15511210043330985984000000"},
	}
	for _, tt := range tests {
		out, err := runCLI(t, "orders", "count", "-n", tt.candidates)
		if err != nil {
			t.Fatalf("orders count -n %s: %v", tt.candidates, err)
		}
		if got := strings.TrimSpace(out); got != tt.want {
			t.Errorf("orders count -n %s = %s, want %s", tt.candidates, got, tt.want)
		}
	}
}

func TestOrdersSample(t *testing.T) {
	out, err := runCLI(t, "orders", "sample", "-n", "4", "--count", "3", "--seed", "2")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d orders, want 3:\n%s", len(lines), out)
	}
	for _, line := range lines {
		var o ballot.Order
		for _, f := range strings.Fields(line) {
			tok, err := ballot.ParseToken(f)
			if err != nil {
				t.Fatalf("parse %q: %v", line, err)
			}
			o = append(o, tok.Candidate)
		}
		if err := o.Validate(4); err != nil {
			t.Errorf("sampled order %q: %v", line, err)
		}
	}

	again, _ := runCLI(t, "orders", "sample", "-n", "4", "--count", "3", "--seed", "2")
	if again != out {
		t.Errorf("same seed gave %q then %q", out, again)
	}
}

func TestOrdersGenerate(t *testing.T) {
	dir := t.TempDir()

	full := filepath.Join(dir, "full.txt")
	if _, err := runCLI(t, "orders", "generate", "-n", "4", "-o", full); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "\n"); got != 24 {
		t.Errorf("full set has %d orders, want 24", got)
	}

	limited := filepath.Join(dir, "limited.txt")
	if _, err := runCLI(t, "orders", "generate", "-n", "6", "--limit", "10", "--cache", "none", "-o", limited); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(limited)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "\n"); got != 10 {
		t.Errorf("limited set has %d orders, want 10", got)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	if _, err := runCLI(t, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := runCLI(t, "config", "init", path); err == nil {
		t.Error("config init over an existing file should fail without --force")
	}
	if _, err := runCLI(t, "config", "init", path, "--force"); err != nil {
		t.Errorf("config init --force: %v", err)
	}

	out, err := runCLI(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "initial_coalition_size: 55") {
		t.Errorf("config show (yaml) lacks the default size:\n%s", out)
	}

	out, err = runCLI(t, "--config", path, "config", "show", "--format", "toml")
	if err != nil {
		t.Fatalf("config show --format toml: %v", err)
	}
	if !strings.Contains(out, "[search]") {
		t.Errorf("config show (toml) lacks the search table:\n%s", out)
	}
}

func TestConfigFileDrivesCommand(t *testing.T) {
	dir := t.TempDir()
	votesPath := writeFile(t, dir, "votes.toi", votes)
	cfgPath := writeFile(t, dir, "run.toml", `
[election]
votes = "`+filepath.ToSlash(votesPath)+`"
header_lines = 2
candidates = 3
`)

	out, err := runCLI(t, "--config", cfgPath, "tally")
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if !strings.Contains(out, "Winner: candidate 1") {
		t.Errorf("output:\n%s", out)
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "run.toml", "[orders]\ncache_dir = \"/tmp/coalition-orders\"\n")

	out, err := runCLI(t, "--config", cfgPath, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != "/tmp/coalition-orders" {
		t.Errorf("cache path = %q, want %q", got, "/tmp/coalition-orders")
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	cacheRoot := filepath.Join(dir, "cache")
	if err := os.MkdirAll(filepath.Join(cacheRoot, "ab"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(cacheRoot, "ab"), "entry", "x")
	writeFile(t, cacheRoot, "other", "y")
	cfgPath := writeFile(t, dir, "run.toml", "[orders]\ncache_dir = \""+filepath.ToSlash(cacheRoot)+"\"\n")

	out, err := runCLI(t, "--config", cfgPath, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("output:\n%s", out)
	}
	entries, _ := os.ReadDir(cacheRoot)
	if len(entries) != 0 {
		t.Errorf("cache dir still holds %d entries", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "coalition") {
		t.Error("bash completion does not mention the command name")
	}
}
