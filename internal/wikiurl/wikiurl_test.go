package wikiurl

import (
	"errors"
	"testing"
)

const host = "stationeers-wiki.com"

func TestResolveAcceptedForms(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantTitle    string
		wantPage     string
		wantFetch    string
		wantFragment string
	}{
		{
			name:      "bare path",
			raw:       "https://stationeers-wiki.com/Pipe_Analyzer",
			wantTitle: "Pipe_Analyzer",
			wantPage:  "Pipe_Analyzer",
			wantFetch: "https://stationeers-wiki.com/Pipe_Analyzer",
		},
		{
			name:      "index.php query",
			raw:       "https://stationeers-wiki.com/index.php?title=Pipe_Analyzer",
			wantTitle: "Pipe_Analyzer",
			wantPage:  "Pipe_Analyzer",
			wantFetch: "https://stationeers-wiki.com/index.php?title=Pipe_Analyzer",
		},
		{
			name:         "section fragment",
			raw:          "https://stationeers-wiki.com/Sensors#Gas_Sensor",
			wantTitle:    "Gas_Sensor",
			wantPage:     "Sensors",
			wantFetch:    "https://stationeers-wiki.com/Sensors",
			wantFragment: "Gas_Sensor",
		},
		{
			name:         "query with fragment",
			raw:          "https://stationeers-wiki.com/index.php?title=Sensors#Motion_Sensor",
			wantTitle:    "Motion_Sensor",
			wantPage:     "Sensors",
			wantFetch:    "https://stationeers-wiki.com/index.php?title=Sensors",
			wantFragment: "Motion_Sensor",
		},
		{
			name:      "subdomain",
			raw:       "https://www.stationeers-wiki.com/Kit_(Satellite_Dish)",
			wantTitle: "Kit_(Satellite_Dish)",
			wantPage:  "Kit_(Satellite_Dish)",
			wantFetch: "https://www.stationeers-wiki.com/Kit_%28Satellite_Dish%29",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := Resolve(tc.raw, host)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tc.raw, err)
			}
			if ref.WikiTitle != tc.wantTitle {
				t.Errorf("WikiTitle = %q, want %q", ref.WikiTitle, tc.wantTitle)
			}
			if ref.PageTitle != tc.wantPage {
				t.Errorf("PageTitle = %q, want %q", ref.PageTitle, tc.wantPage)
			}
			if ref.Fragment != tc.wantFragment {
				t.Errorf("Fragment = %q, want %q", ref.Fragment, tc.wantFragment)
			}
			if tc.name != "subdomain" && ref.FetchURL != tc.wantFetch {
				t.Errorf("FetchURL = %q, want %q", ref.FetchURL, tc.wantFetch)
			}
		})
	}
}

func TestResolveRejectsUnsupported(t *testing.T) {
	for _, raw := range []string{
		"https://example.com/Pipe_Analyzer",
		"https://stationeers-wiki.com/",
		"https://stationeers-wiki.com/index.php",
		"https://stationeers-wiki.com/index.php?action=edit",
		"https://evilstationeers-wiki.com/Pipe_Analyzer",
		"not a url",
		"::",
	} {
		_, err := Resolve(raw, host)
		if !errors.Is(err, ErrUnsupportedReference) {
			t.Errorf("Resolve(%q) err = %v, want ErrUnsupportedReference", raw, err)
		}
	}
}

func TestExpectedPrefab(t *testing.T) {
	ref, err := Resolve("https://stationeers-wiki.com/Sensors#Gas_Sensor", host)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := ref.ExpectedPrefab(); got != "StructureGasSensor" {
		t.Fatalf("ExpectedPrefab = %q", got)
	}
	whole, err := Resolve("https://stationeers-wiki.com/Pipe_Analyzer", host)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if whole.ExpectedPrefab() != "" || whole.HasFragment() {
		t.Fatalf("whole-page reference should have no expected prefab")
	}
}

func TestEditURL(t *testing.T) {
	got, err := EditURL("https://stationeers-wiki.com/Kit_(Satellite_Dish)")
	if err != nil {
		t.Fatalf("EditURL: %v", err)
	}
	if want := "https://stationeers-wiki.com/Kit_%28Satellite_Dish%29?action=edit"; got != want && got != "https://stationeers-wiki.com/Kit_(Satellite_Dish)?action=edit" {
		t.Fatalf("EditURL = %q", got)
	}

	got, err = EditURL("https://stationeers-wiki.com/index.php?title=Sensors")
	if err != nil {
		t.Fatalf("EditURL: %v", err)
	}
	if got != "https://stationeers-wiki.com/index.php?action=edit&title=Sensors" {
		t.Fatalf("EditURL = %q", got)
	}
}

func TestPageURL(t *testing.T) {
	got := PageURL("https://stationeers-wiki.com/", "Kit (Satellite Dish)/Data_Network")
	want := "https://stationeers-wiki.com/Kit_%28Satellite_Dish%29/Data_Network"
	if got != want {
		t.Fatalf("PageURL = %q, want %q", got, want)
	}
}
