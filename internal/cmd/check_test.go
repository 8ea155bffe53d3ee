package cmd

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dendrascience/classver/internal/fixture"
	"github.com/dendrascience/classver/scan"
)

// execute runs a fresh root command with args and captures its output.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// inputs writes a small set of inputs into a fresh working directory.
func inputs(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	if err := fixture.WriteClass("A.class", 61); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("zeros.bin", make([]byte, 16), 0o644); err != nil {
		t.Fatal(err)
	}
	err := fixture.WriteJarFile("lib.jar", []fixture.Entry{
		fixture.Manifest(),
		fixture.ClassEntry("a/A.class", 52),
		fixture.ClassEntry("META-INF/versions/21/a/A.class", 65),
		fixture.ClassEntry("b/B.class", 55),
	})
	if err != nil {
		t.Fatal(err)
	}
}

const bothLines = "A.class: 61 (Java 17)\nlib.jar: 55 (Java 11) [2 classes]\n"

func TestCheckReportsEachInput(t *testing.T) {
	inputs(t)
	for _, args := range [][]string{
		{"A.class", "lib.jar"},
		{"check", "A.class", "lib.jar"},
	} {
		out, stderr, err := execute(t, args...)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", args, err)
		}
		if diff := cmp.Diff(bothLines, out); diff != "" {
			t.Errorf("%v: output mismatch (-want +got):\n%s", args, diff)
		}
		if stderr != "" {
			t.Errorf("%v: expected no log output by default, got %q", args, stderr)
		}
	}
}

func TestCheckMax(t *testing.T) {
	inputs(t)

	out, _, err := execute(t, "--max", "11", "A.class", "lib.jar")
	if !errors.Is(err, scan.ErrThresholdExceeded) {
		t.Fatalf("expected threshold error, got %v", err)
	}
	if got, want := err.Error(), "found classes requiring Java 17, higher than the maximum of Java 11"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
	if out != bothLines {
		t.Errorf("every input should still be reported, got %q", out)
	}

	if _, _, err := execute(t, "-m", "17", "A.class", "lib.jar"); err != nil {
		t.Errorf("max equal to the highest release should pass: %v", err)
	}
	if _, _, err := execute(t, "--max=-1", "A.class"); err == nil || !strings.Contains(err.Error(), "negative") {
		t.Errorf("expected negative max to be rejected, got %v", err)
	}
}

func TestCheckConfig(t *testing.T) {
	inputs(t)
	if err := os.WriteFile(".classver.yaml", []byte("max: 11\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "A.class"); !errors.Is(err, scan.ErrThresholdExceeded) {
		t.Errorf("default config file should apply, got %v", err)
	}
	if _, _, err := execute(t, "--max", "21", "A.class"); err != nil {
		t.Errorf("flag should override the config file: %v", err)
	}

	if err := os.WriteFile("strict.yaml", []byte("max: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := execute(t, "-c", "strict.yaml", "A.class", "lib.jar")
	var te *scan.ThresholdExceededError
	if !errors.As(err, &te) {
		t.Fatalf("expected *ThresholdExceededError, got %v", err)
	}
	if got := te.Error(); !strings.HasPrefix(got, "found classes requiring Java 11, 17,") {
		t.Errorf("unexpected message %q", got)
	}

	if _, _, err := execute(t, "-c", "missing.yaml", "A.class"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing explicit config should fail, got %v", err)
	}
}

func TestCheckStopsAtFirstError(t *testing.T) {
	inputs(t)
	out, _, err := execute(t, "A.class", "zeros.bin", "lib.jar")
	if !errors.Is(err, scan.ErrUnrecognizedInput) {
		t.Fatalf("expected ErrUnrecognizedInput, got %v", err)
	}
	if out != "A.class: 61 (Java 17)\n" {
		t.Errorf("output after failure = %q", out)
	}
}

func TestCheckKeepGoing(t *testing.T) {
	inputs(t)
	out, _, err := execute(t, "-k", "--max", "11", "A.class", "zeros.bin", "lib.jar")
	if !errors.Is(err, scan.ErrUnrecognizedInput) {
		t.Errorf("expected the unreadable input to be reported, got %v", err)
	}
	if !errors.Is(err, scan.ErrThresholdExceeded) {
		t.Errorf("expected the ceiling to be checked over readable inputs, got %v", err)
	}
	if out != bothLines {
		t.Errorf("output = %q", out)
	}
}

func TestCheckUnpack(t *testing.T) {
	inputs(t)
	scratch := t.TempDir()
	out, _, err := execute(t, "--unpack", "--temp-dir", scratch, "A.class", "lib.jar")
	if err != nil {
		t.Fatal(err)
	}
	if out != bothLines {
		t.Errorf("output = %q", out)
	}
	ents, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 0 {
		t.Errorf("scratch space left behind: %d entries", len(ents))
	}
}

func TestCheckVerbose(t *testing.T) {
	inputs(t)
	_, stderr, err := execute(t, "-vv", "A.class")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "level=TRACE") {
		t.Errorf("expected trace output with -vv, got %q", stderr)
	}
}
