package catalog

import "fmt"

// Finding is one validation message tied to a catalog-relative path.
type Finding struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	if f.Path == "" {
		return f.Message
	}
	return f.Path + ": " + f.Message
}

// Report is the outcome of one validation run.
type Report struct {
	Root     string    `json:"root"`
	Devices  int       `json:"devices"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

func newReport(root string) *Report {
	return &Report{Root: root, Errors: []Finding{}, Warnings: []Finding{}}
}

// OK reports whether the run found no errors. Warnings never fail a run.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Summary is the final status line.
func (r *Report) Summary() string {
	if r.OK() {
		return fmt.Sprintf("OK: catalog check passed (%d warning(s))", len(r.Warnings))
	}
	return fmt.Sprintf("FAILED: %d error(s), %d warning(s)", len(r.Errors), len(r.Warnings))
}

func (r *Report) errorf(path, format string, args ...any) {
	r.Errors = append(r.Errors, Finding{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(path, format string, args ...any) {
	r.Warnings = append(r.Warnings, Finding{Path: path, Message: fmt.Sprintf(format, args...)})
}
