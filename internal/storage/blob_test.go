package storage

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveOpenDelete(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "uploads"))

	ref, size, err := store.Save(strings.NewReader("audio bytes"), "user-1", "recipe.m4a")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if size != int64(len("audio bytes")) {
		t.Errorf("size = %d, want %d", size, len("audio bytes"))
	}
	if filepath.Ext(ref) != ".m4a" {
		t.Errorf("ref = %q, want original extension preserved", ref)
	}

	rc, err := store.Open(ref)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "audio bytes" {
		t.Errorf("read back %q, want original content", data)
	}

	if !store.Delete(ref) {
		t.Error("Delete returned false for existing file")
	}
	if store.Delete(ref) {
		t.Error("Delete returned true for already removed file")
	}
	if _, err := store.Open(ref); err == nil {
		t.Error("Open succeeded after delete")
	}
}

func TestSaveUniqueNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	first, _, err := store.Save(strings.NewReader("a"), "user-1", "clip.wav")
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := store.Save(strings.NewReader("b"), "user-1", "clip.wav")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("two saves of the same filename produced the same ref %q", first)
	}
}

func TestSaveDefaultsExtension(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	ref, _, err := store.Save(strings.NewReader("a"), "user-1", "voicenote")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(ref) != ".wav" {
		t.Errorf("ref = %q, want .wav fallback extension", ref)
	}
}
