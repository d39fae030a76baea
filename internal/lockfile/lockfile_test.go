package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAcquire_WritesPID(t *testing.T) {
	dir := t.TempDir()
	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer lock.Release()

	content, err := os.ReadFile(filepath.Join(dir, LockFileName))
	if err != nil {
		t.Fatalf("failed to read lock file: %v", err)
	}
	want := fmt.Sprintf("pid=%d\n", os.Getpid())
	if string(content) != want {
		t.Errorf("lock file content = %q, want %q", content, want)
	}
}

func TestAcquire_Conflict(t *testing.T) {
	dir := t.TempDir()
	lock1, err := Acquire(dir)
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	defer lock1.Release()

	lock2, err := Acquire(dir)
	if err == nil {
		lock2.Release()
		t.Fatal("second Acquire should have failed")
	}
	var held *HeldError
	if !errors.As(err, &held) {
		t.Fatalf("expected HeldError, got %T", err)
	}
	if !strings.Contains(err.Error(), dir) {
		t.Errorf("error should name the lock path: %s", err)
	}
	if !strings.Contains(held.Holder, fmt.Sprintf("PID %d", os.Getpid())) {
		t.Errorf("error should name the holding process: %q", held.Holder)
	}
}

func TestRelease_RemovesFileAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Errorf("Release failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, LockFileName)); !os.IsNotExist(err) {
		t.Error("lock file should be removed after release")
	}
	if err := lock.Release(); err != nil {
		t.Errorf("second Release should be a no-op: %v", err)
	}

	// The directory can be locked again after release.
	again, err := Acquire(dir)
	if err != nil {
		t.Fatalf("reacquire after release failed: %v", err)
	}
	again.Release()
}

func TestAcquire_CreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire should create the state directory: %v", err)
	}
	defer lock.Release()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("state directory not created: %v", err)
	}
}

func TestExtractPID(t *testing.T) {
	cases := []struct {
		content string
		want    int
	}{
		{"pid=12345\n", 12345},
		{"pid=67890\nother=info", 67890},
		{"other=info", 0},
		{"", 0},
		{"pid=abc", 0},
		{"pid12345", 0},
	}
	for _, tc := range cases {
		if got := extractPID(tc.content); got != tc.want {
			t.Errorf("extractPID(%q) = %d, want %d", tc.content, got, tc.want)
		}
	}
}

func TestIsProcessRunning(t *testing.T) {
	if !isProcessRunning(os.Getpid()) {
		t.Error("our own process should be running")
	}
}
