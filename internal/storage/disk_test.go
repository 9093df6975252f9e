package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/techBikashRepo/jobbee-api/internal/storage"
)

func TestDiskStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	ctx := context.Background()
	if err := store.Save(ctx, "resume_u1_j2.pdf", []byte("%PDF-1.4"), "application/pdf"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "resume_u1_j2.pdf"))
	if err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Errorf("file content = %q", data)
	}

	if err := store.Remove(ctx, "resume_u1_j2.pdf"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "resume_u1_j2.pdf")); !os.IsNotExist(err) {
		t.Error("file still exists after Remove")
	}
}

func TestDiskStore_RemoveMissingIsNoError(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	if err := store.Remove(context.Background(), "never_saved.pdf"); err != nil {
		t.Errorf("Remove of missing file = %v, want nil", err)
	}
}

func TestDiskStore_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	store, _ := storage.NewDiskStore(dir)
	ctx := context.Background()

	store.Save(ctx, "r.pdf", []byte("first"), "application/pdf")
	if err := store.Save(ctx, "r.pdf", []byte("second"), "application/pdf"); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "r.pdf"))
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}
}
