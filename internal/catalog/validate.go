package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"stationcat/internal/iofields"
	"stationcat/internal/logging"
)

// ErrUsage marks problems that prevent a validation run from starting: a
// missing catalog, index or devices directory, or an index whose top level
// is malformed.
var ErrUsage = errors.New("catalog usage error")

// Validator checks a catalog directory. It is safe to reuse across runs.
type Validator struct {
	schema *jsonschema.Schema
	logger *slog.Logger
}

// NewValidator compiles the embedded device schema.
func NewValidator(logger *slog.Logger) (*Validator, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	schema, err := compileDeviceSchema()
	if err != nil {
		return nil, err
	}
	return &Validator{
		schema: schema,
		logger: logging.NewComponentLogger(logger, "validator"),
	}, nil
}

// Validate runs a one-off validation of the catalog at root.
func Validate(root string) (*Report, error) {
	v, err := NewValidator(nil)
	if err != nil {
		return nil, err
	}
	return v.Validate(root)
}

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// Validate checks the catalog at root without modifying it. A non-nil error
// wraps ErrUsage; otherwise every problem is in the Report.
func (v *Validator) Validate(root string) (*Report, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, usagef("catalog dir not found: %s", root)
	}
	indexPath := filepath.Join(root, indexFileName)
	if _, err := os.Stat(indexPath); err != nil {
		return nil, usagef("index not found: %s", indexPath)
	}
	devicesPath := filepath.Join(root, devicesDir)
	if info, err := os.Stat(devicesPath); err != nil || !info.IsDir() {
		return nil, usagef("devices dir not found: %s", devicesPath)
	}

	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, usagef("%s: read error: %v", indexPath, err)
	}
	doc, err := decodeJSON(data)
	if err != nil {
		return nil, usagef("%s: json parse error: %v", indexPath, err)
	}
	top, ok := doc.(map[string]any)
	if !ok {
		return nil, usagef("%s: top-level must be an object", indexPath)
	}
	devices, ok := top["devices"].([]any)
	if !ok {
		return nil, usagef("%s: 'devices' must be an array", indexPath)
	}

	report := newReport(root)
	report.Devices = len(devices)
	seenTitles := make(map[string]struct{})
	seenFiles := make(map[string]struct{})

	for i, raw := range devices {
		where := fmt.Sprintf("devices[%d]", i)
		entry, ok := raw.(map[string]any)
		if !ok {
			report.errorf(indexFileName, "%s must be an object", where)
			continue
		}

		title, _ := entry["wikiTitle"].(string)
		if strings.TrimSpace(title) == "" {
			report.errorf(indexFileName, "%s.wikiTitle must be a non-empty string", where)
			title = ""
		}
		file, _ := entry["file"].(string)
		if strings.TrimSpace(file) == "" {
			report.errorf(indexFileName, "%s.file must be a non-empty string", where)
			continue
		}

		file = strings.ReplaceAll(file, `\`, "/")
		if !strings.HasPrefix(file, devicesDir+"/") {
			report.errorf(indexFileName, "%s.file must be under %s/: %s", where, devicesDir, file)
		}
		if title != "" {
			if _, dup := seenTitles[title]; dup {
				report.errorf(indexFileName, "%s.wikiTitle duplicated: %s", where, title)
			}
			seenTitles[title] = struct{}{}
		}
		if _, dup := seenFiles[file]; dup {
			report.errorf(indexFileName, "%s.file duplicated: %s", where, file)
		}
		seenFiles[file] = struct{}{}

		devicePath := filepath.Join(root, filepath.FromSlash(file))
		if _, err := os.Stat(devicePath); err != nil {
			report.errorf(indexFileName, "%s: missing file: %s", where, file)
			continue
		}
		v.checkDevice(report, file, devicePath, title)
	}

	orphans, err := orphanFiles(devicesPath, seenFiles)
	if err != nil {
		return nil, usagef("list %s: %v", devicesPath, err)
	}
	for _, rel := range orphans {
		report.errorf(indexFileName, "orphan device file not indexed: %s", rel)
	}

	v.logger.Debug("catalog validated",
		logging.String("root", root),
		logging.Int("devices", report.Devices),
		logging.Int("errors", len(report.Errors)),
		logging.Int("warnings", len(report.Warnings)))
	return report, nil
}

func orphanFiles(dir string, referenced map[string]struct{}) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var orphans []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rel := devicesDir + "/" + e.Name()
		if _, ok := referenced[rel]; !ok {
			orphans = append(orphans, rel)
		}
	}
	sort.Strings(orphans)
	return orphans, nil
}

func (v *Validator) checkDevice(report *Report, rel, path, indexTitle string) {
	data, err := os.ReadFile(path)
	if err != nil {
		report.errorf(rel, "read error: %v", err)
		return
	}
	doc, err := decodeJSON(data)
	if err != nil {
		report.errorf(rel, "json parse error: %v", err)
		return
	}
	top, ok := doc.(map[string]any)
	if !ok {
		report.errorf(rel, "top-level must be an object")
		return
	}

	if err := v.schema.Validate(top); err != nil {
		for _, msg := range schemaViolations(err) {
			report.errorf(rel, "%s", msg)
		}
	}

	if source, ok := top["source"].(map[string]any); ok {
		checkSource(report, rel, source, indexTitle)
	}
	if ident, ok := top["identity"].(map[string]any); ok {
		checkIdentity(report, rel, ident)
	}
	if ioBlock, ok := top["io"].(map[string]any); ok {
		for _, list := range []string{"parameters", "outputs"} {
			checkFieldTypes(report, rel, list, ioBlock[list])
		}
	}
}

func checkSource(report *Report, rel string, source map[string]any, indexTitle string) {
	kind := KindWikiImport
	if raw, present := source["kind"]; present {
		if s, ok := raw.(string); ok {
			kind = s
		}
	}
	if title, ok := source["wikiTitle"].(string); ok && indexTitle != "" && title != indexTitle {
		report.errorf(rel, "source.wikiTitle '%s' != index wikiTitle '%s'", title, indexTitle)
	}
	if kind == KindWikiImport {
		for _, key := range []string{"wikiUrl", "retrievedAt"} {
			if s, ok := source[key].(string); ok && strings.TrimSpace(s) == "" {
				report.warnf(rel, "source.%s is empty", key)
			}
		}
	}
}

func checkIdentity(report *Report, rel string, ident map[string]any) {
	if name, ok := ident["itemName"].(string); ok && strings.TrimSpace(name) == "" {
		report.warnf(rel, "identity.itemName is empty string (prefer null)")
	}
	// The schema accepts integral numbers written as 1.0 or 1e3.
	if n, ok := ident["itemHash"].(json.Number); ok && strings.ContainsAny(n.String(), ".eE") {
		if f, err := n.Float64(); err == nil && f == math.Trunc(f) {
			report.errorf(rel, "identity.itemHash must be integer|null")
		}
	}
}

func checkFieldTypes(report *Report, rel, list string, raw any) {
	fields, ok := raw.([]any)
	if !ok {
		return
	}
	for i, item := range fields {
		field, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := field["type"].(string); ok && t != "" && !iofields.IsPrimitive(t) {
			report.warnf(rel, "io.%s[%d].type '%s' is not a known field type", list, i, t)
		}
	}
}
