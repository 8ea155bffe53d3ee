package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intPtr(i int) *int { return &i }

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr string
	}{
		{
			name:  "empty",
			input: "",
			want:  Config{},
		},
		{
			name: "everything",
			input: `max: 11
log_level: trace
keep_going: true
unpack: true
temp_dir: /var/tmp
`,
			want: Config{Max: intPtr(11), Verbosity: 2, KeepGoing: true, Unpack: true, TempDir: "/var/tmp"},
		},
		{
			name:  "max only",
			input: "max: 17\n",
			want:  Config{Max: intPtr(17)},
		},
		{
			name:    "unknown key",
			input:   "maximum: 11\n",
			wantErr: "maximum",
		},
		{
			name:    "negative max",
			input:   "max: -1\n",
			wantErr: "negative",
		},
		{
			name:    "info level",
			input:   "log_level: info\n",
			wantErr: "info",
		},
		{
			name:    "bad level",
			input:   "log_level: chatty\n",
			wantErr: "chatty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Parse() error = %v, want mention of %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, f.Resolve()); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("max: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Max == nil || *f.Max != 8 {
		t.Errorf("expected max 8, got %v", f.Max)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("explicit missing file: expected not-exist error, got %v", err)
	}
}

func TestLoadDefaultMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	f, err := Load("")
	if err != nil {
		t.Fatalf("missing default file should be ignored: %v", err)
	}
	if diff := cmp.Diff(Config{}, f.Resolve()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaultPresent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte("keep_going: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	f, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !f.Resolve().KeepGoing {
		t.Error("expected keep_going from default file")
	}
}
