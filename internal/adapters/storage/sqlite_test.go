package storage

import (
	"path/filepath"
	"testing"
)

func newMemoryStore(t *testing.T) *sqliteStore {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.(*sqliteStore)
}

func TestGet_AbsentKey(t *testing.T) {
	s := newMemoryStore(t)

	value, err := s.Get("missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != nil {
		t.Errorf("Get(absent) = %v, want nil", value)
	}
}

func TestPutGet(t *testing.T) {
	s := newMemoryStore(t)

	if err := s.Put("sessions", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	value, err := s.Get("sessions")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(value) != `[{"id":1}]` {
		t.Errorf("Get() = %q, want %q", value, `[{"id":1}]`)
	}
}

func TestPut_Overwrites(t *testing.T) {
	s := newMemoryStore(t)

	s.Put("key", []byte("old"))
	if err := s.Put("key", []byte("new")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	value, _ := s.Get("key")
	if string(value) != "new" {
		t.Errorf("Get() = %q, want %q", value, "new")
	}
}

func TestDelete(t *testing.T) {
	s := newMemoryStore(t)

	s.Put("key", []byte("value"))
	if err := s.Delete("key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	value, err := s.Get("key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != nil {
		t.Errorf("Get() after delete = %v, want nil", value)
	}

	// Deleting an absent key is not an error.
	if err := s.Delete("key"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bellhop.db")

	first, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := first.Put("key", []byte("survives")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer second.Close()

	value, err := second.Get("key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(value) != "survives" {
		t.Errorf("Get() = %q, want %q", value, "survives")
	}
}
