package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"stationcat/internal/catalog"
	"stationcat/internal/testsupport"
)

func TestValidateCommandPassesForValidCatalog(t *testing.T) {
	env := setupCLITestEnv(t)
	root := env.cfg.Paths.CatalogDir
	testsupport.WriteCatalog(t, root,
		[]map[string]any{testsupport.IndexEntryDoc("Pipe_Analyzer")},
		map[string]map[string]any{"Pipe_Analyzer.json": testsupport.DeviceDoc("Pipe_Analyzer")},
	)

	stdout, _, err := env.run(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, stdout, "OK: catalog check passed (0 warning(s))")
}

func TestValidateCommandFailsOnOrphan(t *testing.T) {
	env := setupCLITestEnv(t)
	root := env.cfg.Paths.CatalogDir
	testsupport.WriteCatalog(t, root, nil,
		map[string]map[string]any{"Extra.json": testsupport.DeviceDoc("Extra")},
	)

	stdout, _, err := env.run(t, "validate")
	requireExitCode(t, err, exitFailure)
	requireContains(t, stdout, "ERROR: index.json: orphan device file not indexed: devices/Extra.json")
	requireContains(t, stdout, "FAILED: 1 error(s), 0 warning(s)")
}

func TestValidateCommandWarningsDoNotFail(t *testing.T) {
	env := setupCLITestEnv(t)
	root := env.cfg.Paths.CatalogDir
	doc := testsupport.DeviceDoc("Gas_Sensor")
	doc["io"].(map[string]any)["outputs"] = []any{
		map[string]any{"name": "Ratio", "type": "percentage", "description": ""},
	}
	testsupport.WriteCatalog(t, root,
		[]map[string]any{testsupport.IndexEntryDoc("Gas_Sensor")},
		map[string]map[string]any{"Gas_Sensor.json": doc},
	)

	stdout, _, err := env.run(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, stdout, "WARN:  devices/Gas_Sensor.json")
	requireContains(t, stdout, "OK: catalog check passed (1 warning(s))")
}

func TestValidateCommandMissingCatalogIsUsageError(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := env.run(t, "validate", "--catalog-dir", filepath.Join(t.TempDir(), "nowhere"))
	requireExitCode(t, err, exitUsage)
	requireContains(t, stdout, "ERROR: catalog dir not found")
}

func TestValidateCommandMissingIndexIsUsageError(t *testing.T) {
	env := setupCLITestEnv(t)
	root := env.cfg.Paths.CatalogDir
	if err := os.MkdirAll(filepath.Join(root, "devices"), 0o755); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := env.run(t, "validate")
	requireExitCode(t, err, exitUsage)
	requireContains(t, stdout, "ERROR: index not found")
}

func TestValidateCommandUnknownFlagIsUsageError(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := env.run(t, "validate", "--bogus")
	requireExitCode(t, err, exitUsage)
}

func TestValidateCommandCatalogDirFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	other := testsupport.NewCatalog(t)

	stdout, _, err := env.run(t, "validate", "--catalog-dir", other)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, stdout, "OK: catalog check passed")
}

func TestValidateCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	root := env.cfg.Paths.CatalogDir
	testsupport.WriteCatalog(t, root,
		[]map[string]any{testsupport.IndexEntryDoc("Pipe_Analyzer"), testsupport.IndexEntryDoc("Pipe_Analyzer")},
		map[string]map[string]any{"Pipe_Analyzer.json": testsupport.DeviceDoc("Pipe_Analyzer")},
	)

	stdout, _, err := env.run(t, "validate", "--json")
	requireExitCode(t, err, exitFailure)

	var view reportView
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode report: %v\n%s", err, stdout)
	}
	if view.OK || view.Devices != 2 || len(view.Errors) == 0 {
		t.Fatalf("unexpected report %+v", view)
	}
	requireContains(t, stdout, "wikiTitle duplicated: Pipe_Analyzer")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func TestWatchReporterLogsWriteFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	cmd := &cobra.Command{}
	cmd.SetOut(failingWriter{})

	report := func() *catalog.Report {
		r, err := catalog.Validate(testsupport.NewCatalog(t))
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		return r
	}()
	watchReporter(cmd, logger, true)(report)

	out := logs.String()
	requireContains(t, out, `"event_type":"validate_report_write_failed"`)
	requireContains(t, out, "stdout closed")
}
