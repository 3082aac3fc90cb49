package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	obj, err := store.Save(ctx, "user-1", "report.pdf", bytes.NewReader([]byte("%PDF-1.4 content")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if obj.Key == "" || obj.Size != int64(len("%PDF-1.4 content")) {
		t.Fatalf("unexpected object %+v", obj)
	}
	if !strings.HasPrefix(obj.URL, "file://") {
		t.Fatalf("expected file URL, got %q", obj.URL)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4 content" {
		t.Fatalf("round trip mismatch: %q", data)
	}
}

func TestSaveRejectsTraversalName(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Save(context.Background(), "user-1", "../escape.pdf", bytes.NewReader([]byte("x")))
	if err == nil {
		t.Fatalf("expected error for traversal file name")
	}
}

func TestOpenRejectsTraversalKey(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatalf("expected error for traversal storage key")
	}
}
