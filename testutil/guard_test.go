package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPredicates(t *testing.T) {
	cases := []struct {
		in                       string
		internal, infra, storage bool
	}{
		{"erdash/internal/infra/kv/fs", true, true, true},
		{"erdash/internal/kv", true, false, true},
		{"erdash/internal/kv/core", true, false, true},
		{"erdash/internal/securestore", true, false, true},
		{"erdash/internal/records", true, false, true},
		{"erdash/internal/synth", true, false, false},
		{"erdash/pkg/domain", false, false, false},
	}
	for _, c := range cases {
		if got := InternalImportForbidden(c.in); got != c.internal {
			t.Fatalf("InternalImportForbidden(%q)=%v want %v", c.in, got, c.internal)
		}
		if got := InfraImportForbidden(c.in); got != c.infra {
			t.Fatalf("InfraImportForbidden(%q)=%v want %v", c.in, got, c.infra)
		}
		if got := StorageImportForbidden(c.in); got != c.storage {
			t.Fatalf("StorageImportForbidden(%q)=%v want %v", c.in, got, c.storage)
		}
	}
}

// TestAssertNoDirectImports exercises the success path by creating a tiny temp package with safe imports.
func TestAssertNoDirectImports(t *testing.T) {
	dir := t.TempDir()
	src := []byte("package tmp\nimport \"fmt\"\nfunc X(){fmt.Println(1)}")
	if err := os.WriteFile(filepath.Join(dir, "x.go"), src, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	AssertNoDirectImports(t, dir, func(string) bool { return false }, "none")
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.go":      "package tmp\nimport \"erdash/internal/infra/kv/fs\"\nvar _ = fs.New\n",
		"a_test.go": "package tmp\nimport \"erdash/internal/infra/kv/sqlite\"\n",
		"notes.txt": "import \"erdash/internal/infra/kv/redis\"",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	viols, err := directImportViolations(dir, InfraImportForbidden)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || !strings.Contains(viols[0], "a.go") {
		t.Fatalf("unexpected violations %v", viols)
	}
}

func TestDirectImportViolationsErrors(t *testing.T) {
	if _, err := directImportViolations(filepath.Join(t.TempDir(), "missing"), InfraImportForbidden); err == nil {
		t.Fatalf("expected read error")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.go"), []byte("not go"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := directImportViolations(dir, InfraImportForbidden); err == nil {
		t.Fatalf("expected parse error")
	}
}

type recorder struct{ msg string }

func (r *recorder) Fatalf(format string, args ...any) { r.msg = fmt.Sprintf(format, args...) }

func TestFailIfDirectViolations(t *testing.T) {
	var r recorder
	failIfDirectViolations(&r, "reason", nil)
	if r.msg != "" {
		t.Fatalf("unexpected failure %q", r.msg)
	}
	failIfDirectViolations(&r, "reason", []string{"x (in a.go)"})
	if !strings.Contains(r.msg, "reason") || !strings.Contains(r.msg, "x (in a.go)") {
		t.Fatalf("unexpected message %q", r.msg)
	}
}
