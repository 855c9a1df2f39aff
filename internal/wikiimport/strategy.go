package wikiimport

import (
	"context"
	"html"
	"log/slog"
	"regexp"
	"strings"

	"stationcat/internal/htmltable"
	"stationcat/internal/iofields"
	"stationcat/internal/logging"
	"stationcat/internal/wikiurl"
)

// Strategy names the anchor chain step that produced the IO tables.
type Strategy string

const (
	StrategyDataParameters Strategy = "data_parameters"
	StrategyInputOutput    Strategy = "input_output"
	StrategyTransclusion   Strategy = "transclusion"
	StrategyNone           Strategy = "none"
)

const (
	anchorDataParameters = "Data_Parameters"
	anchorDataOutputs    = "Data_Outputs"
)

// MediaWiki encodes parentheses in ids either literally or as .28/.29.
var (
	inputAnchors  = []string{"Input_Data_(Write)", "Input_Data_.28Write.29"}
	outputAnchors = []string{"Output_Data_(Read)", "Output_Data_.28Read.29"}
)

var transclusionPattern = regexp.MustCompile(`\{\{\s*:\s*([^\}|\n]+?/Data_Network)\s*\}\}`)

type extraction struct {
	parameters []iofields.Field
	outputs    []iofields.Field
	strategy   Strategy
	// sectionAnchor is the offset of the fragment anchor, or -1.
	sectionAnchor int
}

func (e *extraction) empty() bool {
	return len(e.parameters) == 0 && len(e.outputs) == 0
}

// dataTables reads the Data Parameters / Data Outputs pair. With a section
// anchor the search starts there and accepts "_N" suffixed ids; otherwise
// the ids must match exactly.
func dataTables(page string, sectionAnchor int) (params, outs []iofields.Field) {
	var paramsTable, outputsTable string
	var okParams, okOutputs bool
	if sectionAnchor >= 0 {
		paramsTable, okParams = htmltable.AfterAnchor(page, anchorDataParameters, sectionAnchor)
		outputsTable, okOutputs = htmltable.AfterAnchor(page, anchorDataOutputs, sectionAnchor)
	} else {
		paramsTable, okParams = htmltable.AfterExactAnchor(page, anchorDataParameters)
		outputsTable, okOutputs = htmltable.AfterExactAnchor(page, anchorDataOutputs)
	}
	if okParams {
		params, outs = iofields.ExtractParameters(htmltable.Parse(paramsTable))
	}
	if okOutputs {
		outs = append(outs, iofields.ExtractFields(htmltable.Parse(outputsTable))...)
	}
	return params, outs
}

// inputOutputTables reads the "Input Data (Write)" / "Output Data (Read)"
// layout used by Data_Network subpages.
func inputOutputTables(page string) (params, outs []iofields.Field) {
	if table, ok := htmltable.AfterAnyAnchor(page, inputAnchors, 0); ok {
		params = iofields.ExtractFields(htmltable.Parse(table))
	}
	if table, ok := htmltable.AfterAnyAnchor(page, outputAnchors, 0); ok {
		outs = iofields.ExtractFields(htmltable.Parse(table))
	}
	return params, outs
}

// TranscludedDataNetwork returns the first "{{:X/Data_Network}}" title in
// an edit view.
func TranscludedDataNetwork(editPage string) (string, bool) {
	m := transclusionPattern.FindStringSubmatch(editPage)
	if m == nil {
		return "", false
	}
	title := strings.TrimSpace(html.UnescapeString(m[1]))
	return title, title != ""
}

func (im *Importer) extract(ctx context.Context, logger *slog.Logger, page string, ref wikiurl.Reference) (extraction, error) {
	ex := extraction{strategy: StrategyNone, sectionAnchor: -1}
	if ref.HasFragment() {
		if pos, ok := htmltable.FindAnchor(page, ref.Fragment, 0); ok {
			ex.sectionAnchor = pos
		} else {
			logging.WarnWithContext(logger, "section anchor not found", "section_anchor_missing",
				logging.String("fragment", ref.Fragment),
				logging.String(logging.FieldErrorHint, "check the #fragment matches a heading id on the page"),
				logging.String(logging.FieldImpact, "tables and identity are taken from the whole page"))
		}
	}

	ex.parameters, ex.outputs = dataTables(page, ex.sectionAnchor)
	if !ex.empty() {
		ex.strategy = StrategyDataParameters
		return ex, nil
	}

	ex.parameters, ex.outputs = inputOutputTables(page)
	if !ex.empty() {
		ex.strategy = StrategyInputOutput
		return ex, nil
	}

	params, outs, ok, err := im.followTransclusion(ctx, logger, ref)
	if err != nil {
		return ex, err
	}
	if ok {
		ex.parameters, ex.outputs = params, outs
		if !ex.empty() {
			ex.strategy = StrategyTransclusion
		}
	}
	return ex, nil
}

// followTransclusion looks for a */Data_Network transclusion in the page's
// edit view and parses that subpage. A failed edit-view fetch is soft; a
// failed subpage fetch is not.
func (im *Importer) followTransclusion(ctx context.Context, logger *slog.Logger, ref wikiurl.Reference) ([]iofields.Field, []iofields.Field, bool, error) {
	editURL, err := wikiurl.EditURL(ref.FetchURL)
	if err != nil {
		return nil, nil, false, nil
	}
	editPage, err := im.fetcher.Fetch(ctx, editURL)
	if err != nil {
		logging.WarnWithContext(logger, "edit view fetch failed", "edit_fetch_failed",
			logging.String("url", editURL),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "the page may not transclude a Data_Network subpage"),
			logging.String(logging.FieldImpact, "transclusion fallback skipped"))
		return nil, nil, false, nil
	}
	title, ok := TranscludedDataNetwork(editPage)
	if !ok {
		return nil, nil, false, nil
	}

	subpageURL := wikiurl.PageURL(im.settings.BaseURL, title)
	logger.Debug("following data network transclusion",
		logging.String("subpage", title),
		logging.String("url", subpageURL))
	subpage, err := im.fetcher.Fetch(ctx, subpageURL)
	if err != nil {
		return nil, nil, false, err
	}
	params, outs := inputOutputTables(subpage)
	return params, outs, true, nil
}
