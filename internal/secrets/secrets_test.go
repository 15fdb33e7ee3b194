package secrets

import (
	"context"
	"reflect"
	"testing"

	"github.com/codecompass/engine/internal/lang"
	"github.com/codecompass/engine/internal/model"
)

// detect parses source with the named language and runs the full detector.
// The tree stays alive until the test ends so captures remain valid.
func detect(t *testing.T, langName, source string) []model.Opportunity {
	t.Helper()
	l := lang.Languages[langName]
	if l == nil {
		t.Fatalf("language %q not registered", langName)
	}
	tree, err := l.NewParser().ParseCtx(context.Background(), nil, []byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)

	found, err := Detect(tree.RootNode(), []byte(source), l)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	return found
}

func TestPythonSecretAssignment(t *testing.T) {
	t.Parallel()
	source := "import os\n\napiSecretKey = \"aB3xT9mQ7pL2fR8vN4wZ\"\n"

	found := detect(t, "python", source)
	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(found))
	}
	f := found[0]
	if f.Type != model.TypeHardcodedSecret {
		t.Errorf("type = %q, want %q", f.Type, model.TypeHardcodedSecret)
	}
	if f.Line != 3 {
		t.Errorf("line = %d, want 3", f.Line)
	}
	if f.Variable != "apiSecretKey" {
		t.Errorf("variable = %q, want apiSecretKey", f.Variable)
	}
}

func TestPythonNoStringAssignments(t *testing.T) {
	t.Parallel()
	found := detect(t, "python", "def hello():\n    return compute(1, 2)\n")
	if len(found) != 0 {
		t.Fatalf("expected no findings, got %d", len(found))
	}
}

func TestPythonSensitiveNameLowEntropyValue(t *testing.T) {
	t.Parallel()
	// Long enough but a single character class.
	found := detect(t, "python", "password = \"aaaaaaaaaaaaaaaaaaaaaaaaaa\"\n")
	if len(found) != 0 {
		t.Fatalf("expected no findings, got %d", len(found))
	}
}

func TestDeclaratorSecret(t *testing.T) {
	t.Parallel()
	found := detect(t, "javascript", `const apiToken = "aB3xT9mQ7pL2fR8vN4wZ";`)
	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(found))
	}
	if found[0].Variable != "apiToken" {
		t.Errorf("variable = %q, want apiToken", found[0].Variable)
	}
	if found[0].Line != 1 {
		t.Errorf("line = %d, want 1", found[0].Line)
	}
}

func TestDeclaratorShortValue(t *testing.T) {
	t.Parallel()
	found := detect(t, "javascript", `const password = "short1";`)
	if len(found) != 0 {
		t.Fatalf("expected no findings, got %d", len(found))
	}
}

func TestDeclaratorGenericName(t *testing.T) {
	t.Parallel()
	// Value passes the entropy proxy but the name is not sensitive.
	found := detect(t, "javascript", `const greeting = "HelloWorldThisIsALongButNotSecretStringABC123";`)
	if len(found) != 0 {
		t.Fatalf("expected no findings, got %d", len(found))
	}
}

func TestTemplateStringSecret(t *testing.T) {
	t.Parallel()
	found := detect(t, "javascript", "const dbPassword = `aB3xT9mQ7pL2fR8vN4wZ`;")
	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(found))
	}
	if found[0].Variable != "dbPassword" {
		t.Errorf("variable = %q, want dbPassword", found[0].Variable)
	}
}

func TestDeclaratorWithoutInitializer(t *testing.T) {
	t.Parallel()
	found := detect(t, "javascript", "let apiKey;")
	if len(found) != 0 {
		t.Fatalf("expected no findings, got %d", len(found))
	}
}

func TestDestructuringProducesNoFinding(t *testing.T) {
	t.Parallel()
	found := detect(t, "javascript", `const { apiKey } = loadConfig();`)
	if len(found) != 0 {
		t.Fatalf("expected no findings, got %d", len(found))
	}
}

func TestMultipleDeclaratorsEvaluatedIndependently(t *testing.T) {
	t.Parallel()
	source := `const apiKey = "aB3xT9mQ7pL2fR8vN4wZ", greeting = "hello";`

	found := detect(t, "javascript", source)
	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(found))
	}
	if found[0].Variable != "apiKey" {
		t.Errorf("variable = %q, want apiKey", found[0].Variable)
	}
}

func TestTypescriptDeclaratorSecret(t *testing.T) {
	t.Parallel()
	found := detect(t, "typescript", `const authToken: string = "aB3xT9mQ7pL2fR8vN4wZ";`)
	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(found))
	}
	if found[0].Variable != "authToken" {
		t.Errorf("variable = %q, want authToken", found[0].Variable)
	}
}

func TestRubyUsesAssignmentTemplate(t *testing.T) {
	t.Parallel()
	found := detect(t, "ruby", "api_token = \"aB3xT9mQ7pL2fR8vN4wZ\"\n")
	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(found))
	}
	if found[0].Variable != "api_token" {
		t.Errorf("variable = %q, want api_token", found[0].Variable)
	}
}

func TestMalformedSourceStillMatchesValidRegions(t *testing.T) {
	t.Parallel()
	source := "apiSecretKey = \"aB3xT9mQ7pL2fR8vN4wZ\"\ndef ((broken\n"

	found := detect(t, "python", source)
	if len(found) != 1 {
		t.Fatalf("expected 1 finding from the valid region, got %d", len(found))
	}
}

func TestDetectIdempotent(t *testing.T) {
	t.Parallel()
	source := "apiSecretKey = \"aB3xT9mQ7pL2fR8vN4wZ\"\n"

	first := detect(t, "python", source)
	second := detect(t, "python", source)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between runs: %v vs %v", first, second)
	}
}

func TestMatchCapturesPairRoles(t *testing.T) {
	t.Parallel()
	l := lang.Languages["python"]
	source := []byte("apiKey = \"x\"\nother = \"y\"\n")

	tree, err := l.NewParser().ParseCtx(context.Background(), nil, source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)

	captures, err := Match(tree.RootNode(), source, l)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(captures) != 4 {
		t.Fatalf("expected 4 captures (2 pairs), got %d", len(captures))
	}

	var bindings, values int
	for _, c := range captures {
		switch c.Role {
		case RoleBinding:
			bindings++
		case RoleValue:
			values++
		}
	}
	if bindings != 2 || values != 2 {
		t.Errorf("got %d bindings and %d values, want 2 and 2", bindings, values)
	}
}

func TestStripQuotes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, want string
	}{
		{`"abc"`, "abc"},
		{`'abc'`, "abc"},
		{"`abc`", "abc"},
		{`"it's"`, "it's"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := stripQuotes(c.in); got != c.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLooksHighEntropy(t *testing.T) {
	t.Parallel()
	cases := []struct {
		value string
		want  bool
	}{
		{"aB3xT9mQ7pL2fR8vN4wZ", true},
		{"short1A", false},
		{"nouppercase1234567890abc", false},
		{"NOLOWERCASE1234567890ABC", false},
		{"NoDigitsHereJustLettersAll", false},
		{"HelloWorldThisIsALongButNotSecretStringABC123", true},
	}
	for _, c := range cases {
		if got := looksHighEntropy(c.value); got != c.want {
			t.Errorf("looksHighEntropy(%q) = %v, want %v", c.value, got, c.want)
		}
	}
}
