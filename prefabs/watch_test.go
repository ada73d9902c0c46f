package prefabs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/crew.yaml", ChangeSpec, true},
		{"prefabs/station.YML", ChangeSpec, true},
		{"scripts/seek_vessel.tengo", ChangeScript, true},
		{"README.md", 0, false},
		{"notes.txt", 0, false},
	}
	for _, tt := range tests {
		kind, ok := classifyChange(tt.path)
		if ok != tt.ok || (ok && kind != tt.kind) {
			t.Errorf("classifyChange(%q) = %v, %v; want %v, %v", tt.path, kind, ok, tt.kind, tt.ok)
		}
	}
}

func TestWatcherReportsScriptEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	path := filepath.Join(dir, "wander.tengo")
	if err := os.WriteFile(path, []byte("x := 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case change, ok := <-w.Changes():
			if !ok {
				t.Fatal("changes channel closed before the edit arrived")
			}
			if change.Kind == ChangeScript && change.Path == path {
				return
			}
		case err := <-w.Errs():
			t.Fatal(err)
		case <-deadline:
			t.Fatal("script edit never reported")
		}
	}
}

func TestWatcherClose(t *testing.T) {
	t.Run("close_with_unread_events", func(t *testing.T) {
		dir := t.TempDir()
		w, err := NewWatcher(dir)
		if err != nil {
			t.Fatal(err)
		}

		// Pile up more events than the channel buffers without reading any,
		// so the forwarder may be mid-send when Close lands.
		for i := 0; i < 32; i++ {
			name := filepath.Join(dir, fmt.Sprintf("spec_%d.yaml", i))
			if err := os.WriteFile(name, []byte("name: x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		time.Sleep(50 * time.Millisecond)

		if err := w.Close(); err != nil {
			t.Fatal(err)
		}

		deadline := time.After(3 * time.Second)
		for {
			select {
			case _, ok := <-w.Changes():
				if !ok {
					return
				}
			case <-deadline:
				t.Fatal("changes channel never closed after Close")
			}
		}
	})

	t.Run("double_close_is_safe", func(t *testing.T) {
		w, err := NewWatcher(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
	})
}
