package sound

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	return NewLibrary(t.TempDir(), zap.NewNop())
}

func TestEnsureDirInstallsBundledSound(t *testing.T) {
	lib := newTestLibrary(t)

	if err := lib.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir returned error: %v", err)
	}

	names, err := lib.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(names) != 1 || names[0] != "default.wav" {
		t.Fatalf("expected bundled default.wav, got %v", names)
	}

	data, err := os.ReadFile(filepath.Join(lib.Dir(), "default.wav"))
	if err != nil {
		t.Fatalf("read installed sound: %v", err)
	}
	if len(data) < 44 || string(data[0:4]) != "RIFF" {
		t.Fatal("installed sound is not a RIFF file")
	}
}

func TestEnsureDirKeepsExistingSounds(t *testing.T) {
	lib := newTestLibrary(t)
	if err := os.WriteFile(filepath.Join(lib.Dir(), "bird.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed sound: %v", err)
	}

	if err := lib.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir returned error: %v", err)
	}

	names, _ := lib.List()
	if len(names) != 1 || names[0] != "bird.mp3" {
		t.Fatalf("non-empty directory must stay untouched, got %v", names)
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	lib := newTestLibrary(t)
	for _, name := range []string{"zebra.wav", "bird.mp3", "notes.txt", "voice.m4a"} {
		if err := os.WriteFile(filepath.Join(lib.Dir(), name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(lib.Dir(), "sub.wav"), 0o755); err != nil {
		t.Fatalf("seed directory: %v", err)
	}

	names, err := lib.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	want := []string{"bird.mp3", "zebra.wav"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("List = %v, want %v", names, want)
		}
	}
}

func TestListMissingDirectory(t *testing.T) {
	lib := NewLibrary(filepath.Join(t.TempDir(), "nope"), zap.NewNop())

	names, err := lib.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty list, got %v", names)
	}
}

func TestResolve(t *testing.T) {
	lib := newTestLibrary(t)
	for _, name := range []string{"default.wav", "bird.mp3"} {
		if err := os.WriteFile(filepath.Join(lib.Dir(), name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	cases := []struct {
		key  string
		want string
		ok   bool
	}{
		{"default.wav", "default.wav", true},
		{"default", "default.wav", true},
		{"bird", "bird.mp3", true},
		{" default ", "default.wav", true},
		{"missing", "", false},
		{"missing.wav", "", false},
		{"", "", false},
		{"../default", "", false},
	}
	for _, tc := range cases {
		got, ok := lib.Resolve(tc.key)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Resolve(%q) = %q %v, want %q %v", tc.key, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPathRejectsPathComponents(t *testing.T) {
	lib := newTestLibrary(t)

	if _, err := lib.Path("../secret.wav"); err == nil {
		t.Fatal("expected error for path traversal")
	}
	if _, err := lib.Path("a/b.wav"); err == nil {
		t.Fatal("expected error for nested path")
	}

	got, err := lib.Path("default.wav")
	if err != nil {
		t.Fatalf("Path returned error: %v", err)
	}
	if got != filepath.Join(lib.Dir(), "default.wav") {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestImport(t *testing.T) {
	lib := newTestLibrary(t)

	if err := lib.Import("memo.wav", strings.NewReader("payload")); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(lib.Dir(), "memo.wav"))
	if err != nil {
		t.Fatalf("read imported sound: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected content %q", data)
	}

	if err := lib.Import("voice.m4a", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if err := lib.Import("../evil.wav", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for path traversal")
	}
}
