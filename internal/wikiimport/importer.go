package wikiimport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stationcat/internal/catalog"
	"stationcat/internal/history"
	"stationcat/internal/identity"
	"stationcat/internal/iofields"
	"stationcat/internal/logging"
	"stationcat/internal/wikifetch"
	"stationcat/internal/wikiurl"
)

// retrievedAtLayout renders UTC as "+00:00" rather than "Z".
const retrievedAtLayout = "2006-01-02T15:04:05-07:00"

// Recorder stores a summary of each import run.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (int64, error)
}

// Settings carries the wiki endpoints an Importer needs.
type Settings struct {
	// Host is the wiki host accepted by the URL resolver.
	Host string
	// BaseURL prefixes transcluded subpage titles.
	BaseURL string
}

// Importer runs imports against one catalog.
type Importer struct {
	settings Settings
	fetcher  wikifetch.Fetcher
	store    *catalog.Store
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
	newRunID func() string
}

// Option configures an Importer.
type Option func(*Importer)

// WithRecorder records every run, successful or not.
func WithRecorder(r Recorder) Option {
	return func(im *Importer) {
		im.recorder = r
	}
}

// WithClock overrides the time source used for retrievedAt.
func WithClock(now func() time.Time) Option {
	return func(im *Importer) {
		if now != nil {
			im.now = now
		}
	}
}

// WithRunIDs overrides run id generation.
func WithRunIDs(next func() string) Option {
	return func(im *Importer) {
		if next != nil {
			im.newRunID = next
		}
	}
}

// New builds an Importer.
func New(settings Settings, fetcher wikifetch.Fetcher, store *catalog.Store, logger *slog.Logger, opts ...Option) *Importer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if settings.BaseURL == "" {
		settings.BaseURL = "https://" + settings.Host
	}
	im := &Importer{
		settings: settings,
		fetcher:  fetcher,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "wikiimport"),
		now:      time.Now,
		newRunID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Result describes a completed import.
type Result struct {
	RunID     string
	Reference wikiurl.Reference
	Device    *catalog.Device
	Entry     catalog.IndexEntry
	Strategy  Strategy
	Inferred  int
}

// Import runs the full pipeline for one wiki URL. Errors wrap
// wikiurl.ErrUnsupportedReference for bad input and wikifetch.ErrFetch for
// network failures; in both cases nothing is written.
func (im *Importer) Import(ctx context.Context, rawURL string) (*Result, error) {
	runID := im.newRunID()
	started := im.now()
	ctx = logging.WithCorrelationID(ctx, runID)

	result, err := im.run(ctx, runID, rawURL)
	im.record(ctx, rawURL, started, result, err)
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, im.logger), "import failed", "import_failed",
			logging.String("url", rawURL),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the URL host and that the wiki is reachable"))
		return nil, err
	}
	return result, nil
}

func (im *Importer) run(ctx context.Context, runID, rawURL string) (*Result, error) {
	ref, err := wikiurl.Resolve(rawURL, im.settings.Host)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithWikiTitle(ctx, ref.WikiTitle)
	logger := logging.WithContext(ctx, im.logger)
	logger.Info("import started",
		logging.String("url", rawURL),
		logging.String("fetch_url", ref.FetchURL))

	page, err := im.fetcher.Fetch(ctx, ref.FetchURL)
	if err != nil {
		return nil, err
	}

	ex, err := im.extract(ctx, logger, page, ref)
	if err != nil {
		return nil, err
	}
	if ex.strategy == StrategyNone {
		logging.WarnWithContext(logger, "no IO tables found", "io_tables_missing",
			logging.String(logging.FieldErrorHint, "inspect the page for a Data Network section"),
			logging.String(logging.FieldImpact, "record written with empty parameters and outputs"))
	}

	var id identity.Identity
	if ex.sectionAnchor >= 0 {
		id = identity.FromSection(page, ex.sectionAnchor, ref.ExpectedPrefab())
	} else {
		id = identity.FromPage(page)
	}
	if id.IsZero() {
		logging.WarnWithContext(logger, "identity not found", "identity_missing",
			logging.String("expected_prefab", ref.ExpectedPrefab()),
			logging.String(logging.FieldErrorHint, "check the infobox for Item/Prefab Name and Hash"),
			logging.String(logging.FieldImpact, "itemName and itemHash written as null"))
	}

	device := &catalog.Device{
		Source: catalog.Source{
			Kind:        catalog.KindWikiImport,
			WikiURL:     rawURL,
			WikiTitle:   ref.WikiTitle,
			RetrievedAt: im.now().UTC().Format(retrievedAtLayout),
		},
		Identity: id,
		IO: catalog.IO{
			Parameters: iofields.Dedupe(ex.parameters),
			Outputs:    iofields.Dedupe(ex.outputs),
		},
	}

	entry, err := im.store.Put(device)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", ref.WikiTitle, err)
	}

	inferred := iofields.CountInferred(device.IO.Parameters) + iofields.CountInferred(device.IO.Outputs)
	logger.Info("import finished",
		logging.String("file", entry.File),
		logging.String("strategy", string(ex.strategy)),
		logging.Int("parameters", len(device.IO.Parameters)),
		logging.Int("outputs", len(device.IO.Outputs)),
		logging.Int("inferred_types", inferred),
		logging.Bool("identity_found", !id.IsZero()))

	return &Result{
		RunID:     runID,
		Reference: ref,
		Device:    device,
		Entry:     entry,
		Strategy:  ex.strategy,
		Inferred:  inferred,
	}, nil
}

func (im *Importer) record(ctx context.Context, rawURL string, started time.Time, result *Result, runErr error) {
	if im.recorder == nil {
		return
	}
	runID, _ := logging.CorrelationIDFromContext(ctx)
	entry := history.Entry{
		RunID:      runID,
		WikiURL:    rawURL,
		Status:     history.StatusSucceeded,
		StartedAt:  started,
		FinishedAt: im.now(),
	}
	if runErr != nil {
		entry.Status = history.StatusFailed
		entry.Error = runErr.Error()
		if ref, err := wikiurl.Resolve(rawURL, im.settings.Host); err == nil {
			entry.WikiTitle = ref.WikiTitle
		}
	}
	if result != nil {
		entry.WikiTitle = result.Reference.WikiTitle
		entry.Strategy = string(result.Strategy)
		entry.Parameters = len(result.Device.IO.Parameters)
		entry.Outputs = len(result.Device.IO.Outputs)
		entry.Inferred = result.Inferred
		entry.ItemName = result.Device.Identity.ItemName
		entry.ItemHash = result.Device.Identity.ItemHash
	}
	id, err := im.recorder.Record(ctx, entry)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, im.logger), "import history not recorded", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check history.path in the config"),
			logging.String(logging.FieldImpact, "the run is missing from import history"))
		return
	}
	logging.WithContext(ctx, im.logger).Debug("import recorded",
		logging.Int64("history_id", id),
		logging.String("status", string(entry.Status)))
}
