package history

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestLoadMissing(t *testing.T) {
	s := OpenAt(filepath.Join(t.TempDir(), "none", "history.mp"), 0)
	got, err := s.Load()
	if err != nil || got != nil {
		t.Fatalf("Load = %v, %v", got, err)
	}
}

func TestSaveLoadKeepsTail(t *testing.T) {
	s := OpenAt(filepath.Join(t.TempDir(), "sub", "history.mp"), 3)
	if err := s.Save([]string{"1", "2 + 2", "3 ** 3", "4 / 0"}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"2 + 2", "3 ** 3", "4 / 0"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Load = %q, want %q", got, want)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestLoadOtherSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.mp")
	data, err := msgpack.Marshal(&payload{Schema: schemaVersion + 1, Entries: []string{"1"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := OpenAt(path, 0).Load()
	if err != nil || got != nil {
		t.Fatalf("Load = %v, %v", got, err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.mp")
	if err := os.WriteFile(path, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenAt(path, 0).Load(); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestOpenUsesCacheHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	s, err := Open("dogwood")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "dogwood", "history.mp"); s.Path() != want {
		t.Errorf("Path = %q, want %q", s.Path(), want)
	}
}
