package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDirWrite(t *testing.T) {
	root := filepath.Join(t.TempDir(), "exports")
	dir, err := OpenDir(root)
	if err != nil {
		t.Fatalf("OpenDir returned error: %v", err)
	}
	if dir.Root() != root {
		t.Fatalf("Root = %q, want %q", dir.Root(), root)
	}

	path, err := dir.Write(context.Background(), "gangnam/naver.txt", []byte("강남역"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if want := filepath.Join(root, "gangnam", "naver.txt"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "강남역" {
		t.Fatalf("read back %q, %v", data, err)
	}
}

func TestDirWriteRejectsEscapes(t *testing.T) {
	dir, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir returned error: %v", err)
	}
	for _, name := range []string{"", "  ", "../outside.txt", "a/../../outside.txt", "."} {
		if _, err := dir.Write(context.Background(), name, []byte("x")); err == nil {
			t.Fatalf("Write(%q) succeeded, want error", name)
		}
	}
}

func TestDirWriteHonoursCancelledContext(t *testing.T) {
	dir, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := dir.Write(ctx, "naver.txt", []byte("x")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestOpenDirRequiresRoot(t *testing.T) {
	if _, err := OpenDir(" "); err == nil {
		t.Fatal("expected error for empty root")
	}
}
