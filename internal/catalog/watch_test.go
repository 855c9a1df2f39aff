package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"stationcat/internal/testsupport"
)

func TestWatchRevalidatesOnChange(t *testing.T) {
	root := testsupport.NewCatalog(t)
	v, err := NewValidator(nil)
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reports := make(chan *Report, 8)
	done := make(chan error, 1)
	go func() {
		done <- v.Watch(ctx, root, 20*time.Millisecond, func(r *Report) { reports <- r })
	}()

	first := <-reports
	if !first.OK() {
		t.Fatalf("initial report should pass: %v", first.Errors)
	}

	testsupport.WriteJSON(t, filepath.Join(root, "devices", "Orphan.json"), testsupport.DeviceDoc("Orphan"))

	select {
	case r := <-reports:
		if r.OK() {
			t.Fatal("expected the orphan to fail revalidation")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for revalidation")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch returned %v", err)
	}
}

func TestRelevantChange(t *testing.T) {
	root := filepath.Join("/", "cat")
	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"index write", fsnotify.Event{Name: filepath.Join(root, "index.json"), Op: fsnotify.Write}, true},
		{"device create", fsnotify.Event{Name: filepath.Join(root, "devices", "X.json"), Op: fsnotify.Create}, true},
		{"temp file", fsnotify.Event{Name: filepath.Join(root, "devices", ".X.json.1.tmp"), Op: fsnotify.Create}, false},
		{"chmod only", fsnotify.Event{Name: filepath.Join(root, "index.json"), Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(root, "notes.txt"), Op: fsnotify.Write}, false},
	}
	for _, tc := range cases {
		if got := relevantChange(root, tc.event); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
