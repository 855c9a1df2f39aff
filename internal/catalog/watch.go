package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"stationcat/internal/logging"
)

// Watch validates root once, then again after every burst of changes to
// index.json or devices/. Each report is passed to onReport. Watch blocks
// until ctx is cancelled, returning nil, or until a run fails with ErrUsage.
func (v *Validator) Watch(ctx context.Context, root string, debounce time.Duration, onReport func(*Report)) error {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	devicesPath := filepath.Join(root, devicesDir)
	for _, dir := range []string{root, devicesPath} {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("%w: watch %s: %v", ErrUsage, dir, err)
		}
	}
	report, err := v.Validate(root)
	if err != nil {
		return err
	}
	onReport(report)

	v.logger.Info("watching catalog",
		logging.String("root", root),
		logging.Duration("debounce", debounce))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantChange(root, event) {
				continue
			}
			v.logger.Debug("catalog change",
				logging.String("path", event.Name),
				logging.String("op", event.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(v.logger, "catalog watcher error", "catalog_watch_error",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "changes may be missed until the next event"),
				logging.String(logging.FieldImpact, "validation may lag behind the catalog"))
		case <-timer.C:
			report, err := v.Validate(root)
			if err != nil {
				if errors.Is(err, ErrUsage) {
					return err
				}
				logging.WarnWithContext(v.logger, "catalog revalidation failed", "catalog_watch_validate_failed",
					logging.Error(err))
				continue
			}
			onReport(report)
		}
	}
}

func relevantChange(root string, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	dir := filepath.Clean(filepath.Dir(event.Name))
	switch dir {
	case filepath.Clean(root):
		return name == indexFileName || name == devicesDir
	case filepath.Clean(filepath.Join(root, devicesDir)):
		return strings.HasSuffix(name, ".json")
	}
	return false
}
