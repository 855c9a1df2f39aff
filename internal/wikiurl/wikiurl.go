// Package wikiurl classifies Stationeers wiki references into the catalog
// title, the URL to download, and an optional section fragment.
package wikiurl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnsupportedReference marks references that are not pages on the expected
// wiki host or from which no page title can be derived.
var ErrUnsupportedReference = errors.New("unsupported wiki reference")

// structurePrefix is prepended to a section fragment to guess the prefab name
// of a device documented on a multi-device page (Gas_Sensor -> StructureGasSensor).
const structurePrefix = "Structure"

// Reference is a resolved wiki URL.
type Reference struct {
	// WikiTitle is the catalog key: the fragment when present, else the page title.
	WikiTitle string
	// PageTitle is the wiki page the reference points at.
	PageTitle string
	// FetchURL is the original URL without its fragment.
	FetchURL string
	// Fragment is the section anchor id, empty when absent.
	Fragment string
}

// HasFragment reports whether the reference targets a section of a page.
func (r Reference) HasFragment() bool {
	return r.Fragment != ""
}

// ExpectedPrefab derives the prefab name a section fragment most likely
// documents. It returns "" for whole-page references.
func (r Reference) ExpectedPrefab() string {
	if r.Fragment == "" {
		return ""
	}
	return structurePrefix + strings.ReplaceAll(r.Fragment, "_", "")
}

// Resolve parses raw and checks it against host. Accepted forms:
//
//	https://<host>/<Title>
//	https://<host>/index.php?title=<Title>
//	either of the above with #<Section>
func Resolve(raw, host string) (Reference, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil {
		return Reference{}, fmt.Errorf("%w: %q: %v", ErrUnsupportedReference, raw, err)
	}
	if !matchesHost(parsed.Hostname(), host) {
		return Reference{}, fmt.Errorf("%w: host %q is not %s", ErrUnsupportedReference, parsed.Host, host)
	}

	pageTitle := pageTitleFrom(parsed)
	if pageTitle == "" {
		return Reference{}, fmt.Errorf("%w: no page title in %q", ErrUnsupportedReference, raw)
	}

	fragment := strings.TrimSpace(parsed.Fragment)
	fetch := *parsed
	fetch.Fragment = ""
	fetch.RawFragment = ""

	ref := Reference{
		WikiTitle: pageTitle,
		PageTitle: pageTitle,
		FetchURL:  fetch.String(),
		Fragment:  fragment,
	}
	if fragment != "" {
		ref.WikiTitle = fragment
	}
	return ref, nil
}

func matchesHost(actual, expected string) bool {
	actual = strings.ToLower(strings.TrimSpace(actual))
	expected = strings.ToLower(strings.TrimSpace(expected))
	if actual == "" || expected == "" {
		return false
	}
	return actual == expected || strings.HasSuffix(actual, "."+expected)
}

func pageTitleFrom(u *url.URL) string {
	path := strings.TrimLeft(u.Path, "/")
	if path == "" {
		return ""
	}
	if strings.EqualFold(path, "index.php") {
		return strings.TrimSpace(u.Query().Get("title"))
	}
	first, _, _ := strings.Cut(path, "/")
	return strings.TrimSpace(first)
}

// WithQuery returns rawURL with its query string replaced by query.
func WithQuery(rawURL, query string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", rawURL, err)
	}
	parsed.RawQuery = query
	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String(), nil
}

// EditURL returns the edit view of a page, which exposes the raw wikitext.
// For index.php references the title parameter is preserved.
func EditURL(fetchURL string) (string, error) {
	parsed, err := url.Parse(fetchURL)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", fetchURL, err)
	}
	query := url.Values{}
	if title := parsed.Query().Get("title"); title != "" {
		query.Set("title", title)
	}
	query.Set("action", "edit")
	return WithQuery(fetchURL, query.Encode())
}

// PageURL builds the canonical URL of a wiki page title under baseURL.
// Titles may contain "/" for subpages such as Kit_(Satellite_Dish)/Data_Network.
func PageURL(baseURL, title string) string {
	title = strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	segments := strings.Split(title, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.Join(segments, "/")
}
