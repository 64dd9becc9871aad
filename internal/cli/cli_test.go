package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/umlpad/pkg/plantuml"
)

// testCLI returns a CLI isolated from the user's config, cache and data dirs.
func testCLI(t *testing.T, stdin string) *CLI {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))

	c := New(&bytes.Buffer{}, LogInfo)
	c.stdin = strings.NewReader(stdin)
	return c
}

func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenFromArg(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"SyfFKj2rKt3CoKnELR1Io4ZDoSa70000", "SyfFKj2rKt3CoKnELR1Io4ZDoSa70000"},
		{"~1SyfFKj2rKt3CoKnELR1Io4ZDoSa70000", "SyfFKj2rKt3CoKnELR1Io4ZDoSa70000"},
		{"https://www.plantuml.com/plantuml/png/~1SyfFKj2rKt3CoKnELR1Io4ZDoSa70000", "SyfFKj2rKt3CoKnELR1Io4ZDoSa70000"},
		{"  http://localhost:8080/svg/~1abc\n", "abc"},
	}
	for _, tt := range tests {
		if got := tokenFromArg(tt.arg); got != tt.want {
			t.Errorf("tokenFromArg(%q) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}

func TestReadSource(t *testing.T) {
	c := testCLI(t, "Alice -> Bob")

	got, err := c.readSource(nil)
	if err != nil || got != "Alice -> Bob" {
		t.Errorf("readSource(stdin) = %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "d.puml")
	if err := os.WriteFile(path, []byte("class Foo"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = c.readSource([]string{path})
	if err != nil || got != "class Foo" {
		t.Errorf("readSource(file) = %q, %v", got, err)
	}

	if _, err := c.readSource([]string{filepath.Join(t.TempDir(), "missing.puml")}); err == nil {
		t.Error("readSource(missing) should fail")
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := testCLI(t, "").RootCommand()

	want := []string{"serve", "edit", "encode", "decode", "render", "entities", "draft", "cache", "completion"}
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestEncodeDecodeCommands(t *testing.T) {
	const code = "@startuml\nAlice -> Bob: hello\n@enduml"
	c := testCLI(t, code)

	out, err := execute(t, c, "encode", "--no-cache")
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	token := strings.TrimSpace(out)
	want, _ := plantuml.Encode(code)
	if token != want {
		t.Errorf("encode = %q, want %q", token, want)
	}

	out, err = execute(t, testCLI(t, ""), "decode", "https://www.plantuml.com/plantuml/png/~1"+token)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if strings.TrimSuffix(out, "\n") != code {
		t.Errorf("decode = %q, want %q", out, code)
	}
}

func TestEncodeCommandOutputs(t *testing.T) {
	const code = "Alice -> Bob"
	token, _ := plantuml.Encode(code)

	out, err := execute(t, testCLI(t, code), "encode", "--no-cache", "--url", "--format", "svg", "--server", "http://localhost:8080/")
	if err != nil {
		t.Fatalf("encode --url error: %v", err)
	}
	if got, want := strings.TrimSpace(out), "http://localhost:8080/svg/~1"+token; got != want {
		t.Errorf("encode --url = %q, want %q", got, want)
	}

	out, err = execute(t, testCLI(t, code), "encode", "--no-cache", "--json")
	if err != nil {
		t.Fatalf("encode --json error: %v", err)
	}
	var res struct {
		URL      string `json:"url"`
		Encoded  string `json:"encoded"`
		Metadata struct {
			OriginalCode string `json:"originalCode"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if res.Encoded != token || res.Metadata.OriginalCode != code {
		t.Errorf("encode --json = %+v", res)
	}
}

func TestEncodeCommandEmptySource(t *testing.T) {
	if _, err := execute(t, testCLI(t, "  \n"), "encode", "--no-cache"); err == nil {
		t.Error("encode of empty source should fail")
	}
}

func TestDecodeCommandInvalidToken(t *testing.T) {
	if _, err := execute(t, testCLI(t, ""), "decode", "not*a*token"); err == nil {
		t.Error("decode of an invalid token should fail")
	}
}

func TestEntitiesCommandPlain(t *testing.T) {
	code := "participant Alice\nactor Bob\nclass Account\nAlice -> Bob"

	out, err := execute(t, testCLI(t, code), "entities", "--plain")
	if err != nil {
		t.Fatalf("entities error: %v", err)
	}
	if got, want := out, "Account\nAlice\nBob\n"; got != want {
		t.Errorf("entities --plain = %q, want %q", got, want)
	}

	out, err = execute(t, testCLI(t, code), "entities", "--plain", "--prefix", "al")
	if err != nil {
		t.Fatalf("entities --prefix error: %v", err)
	}
	if got, want := out, "Alice\n"; got != want {
		t.Errorf("entities --prefix = %q, want %q", got, want)
	}
}

func TestConfigFlagRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nformat = \"gif\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, testCLI(t, "A -> B"), "--config", path, "encode"); err == nil {
		t.Error("invalid config should fail the command")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output string
		args   []string
		format string
		want   string
	}{
		{"out.png", []string{"d.puml"}, "png", "out.png"},
		{"", []string{"diagrams/seq.puml"}, "svg", "diagrams/seq.svg"},
		{"", nil, "png", "diagram.png"},
		{"", []string{"-"}, "txt", "diagram.txt"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.args, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %v, %q) = %q, want %q", tt.output, tt.args, tt.format, got, tt.want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, testCLI(t, ""), "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out, "umlpad") {
				t.Errorf("completion %s output does not mention umlpad", shell)
			}
		})
	}
}
