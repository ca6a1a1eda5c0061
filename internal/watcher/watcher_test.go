package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// collectChanges returns a watcher and a channel of observed contents.
func collectChanges(t *testing.T, path string) (*FileWatcher, chan string) {
	t.Helper()

	changes := make(chan string, 10)
	w, err := New(path, func(content string) {
		changes <- content
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, changes
}

func waitFor(t *testing.T, changes chan string, want string) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-changes:
			if got == want {
				return
			}
			// Intermediate write states are fine; keep waiting.
		case <-deadline:
			t.Fatalf("timed out waiting for content %q", want)
		}
	}
}

func TestWatcherSeesExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("# v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, changes := collectChanges(t, path)

	if err := os.WriteFile(path, []byte("# v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, changes, "# v2")
}

func TestWatcherSeesFileCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.md")

	_, changes := collectChanges(t, path)

	if err := os.WriteFile(path, []byte("fresh"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, changes, "fresh")
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, changes := collectChanges(t, path)

	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("not mine"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changes:
		t.Errorf("received %q for a sibling file", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherSuppressesOwnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, changes := collectChanges(t, path)

	w.SuppressNext(500 * time.Millisecond)
	if err := os.WriteFile(path, []byte("self-save"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changes:
		t.Errorf("received %q for a suppressed save", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherExternalWriteAfterSuppressionWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, changes := collectChanges(t, path)

	w.SuppressNext(50 * time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	if err := os.WriteFile(path, []byte("external"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, changes, "external")
}

func TestWatcherCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, _ := collectChanges(t, path)

	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "no-such-dir", "doc.md"), func(string) {}); err == nil {
		t.Error("New() succeeded for a missing directory")
	}
}
