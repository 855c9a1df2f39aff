package htmltable

import (
	"strings"
	"testing"
)

const sectionPage = `<h2><span class="mw-headline" id="Gas_Sensor">Gas Sensor</span></h2>
<h3><span id="Data_Parameters">Data Parameters</span></h3>
<table class="wikitable"><tr><th>Parameter Name</th></tr><tr><td>First</td></tr></table>
<h2><span id='Fire_Sensor'>Fire Sensor</span></h2>
<h3><span id="Data_Parameters_2">Data Parameters</span></h3>
<p>intro</p>
<table class="wikitable"><tr><th>Parameter Name</th></tr><tr><td>Second</td></tr></table>`

func TestFindAnchorAcceptsBothQuoteStyles(t *testing.T) {
	pos, ok := FindAnchor(sectionPage, "Fire_Sensor", 0)
	if !ok {
		t.Fatal("expected single-quoted anchor to match")
	}
	if !strings.HasPrefix(sectionPage[pos:], "id='Fire_Sensor'") {
		t.Fatalf("unexpected offset %d", pos)
	}
	if _, ok := FindAnchor(sectionPage, "Fire", 0); ok {
		t.Fatal("partial ids must not match")
	}
	if _, ok := FindAnchor(sectionPage, "Gas_Sensor", pos); ok {
		t.Fatal("search must start at from")
	}
}

func TestAfterAnchorHonoursSuffixAndStart(t *testing.T) {
	table, ok := AfterAnchor(sectionPage, "Data_Parameters", 0)
	if !ok || !strings.Contains(table, "First") {
		t.Fatalf("first table = %q, %v", table, ok)
	}

	from, _ := FindAnchor(sectionPage, "Fire_Sensor", 0)
	table, ok = AfterAnchor(sectionPage, "Data_Parameters", from)
	if !ok {
		t.Fatal("expected suffixed anchor to match")
	}
	if !strings.HasPrefix(table, "<table") || !strings.HasSuffix(table, "</table>") {
		t.Fatalf("table slice not delimited: %q", table)
	}
	if !strings.Contains(table, "Second") || strings.Contains(table, "First") {
		t.Fatalf("wrong table selected: %q", table)
	}
}

func TestAfterExactAnchorIgnoresSuffixedIDs(t *testing.T) {
	page := `<span id="Data_Outputs_2"></span><table><tr><td>x</td></tr></table>`
	if _, ok := AfterExactAnchor(page, "Data_Outputs"); ok {
		t.Fatal("exact lookup must not match suffixed anchors")
	}
	if _, ok := AfterAnchor(page, "Data_Outputs", 0); !ok {
		t.Fatal("prefix lookup should match suffixed anchors")
	}
}

func TestAfterAnchorMisses(t *testing.T) {
	cases := map[string]string{
		"no anchor":      `<table></table>`,
		"no table":       `<span id="Data_Parameters"></span><p>none</p>`,
		"unclosed table": `<span id="Data_Parameters"></span><table><tr><td>x`,
	}
	for name, page := range cases {
		t.Run(name, func(t *testing.T) {
			if table, ok := AfterAnchor(page, "Data_Parameters", 0); ok {
				t.Fatalf("expected miss, got %q", table)
			}
		})
	}
}

func TestAfterAnyAnchorTriesPrefixesInOrder(t *testing.T) {
	page := `<span id="Input_Data_.28Write.29"></span><table><tr><td>encoded</td></tr></table>`
	table, ok := AfterAnyAnchor(page, []string{"Input_Data_(Write)", "Input_Data_.28Write.29"}, 0)
	if !ok || !strings.Contains(table, "encoded") {
		t.Fatalf("got %q, %v", table, ok)
	}
	if _, ok := AfterAnyAnchor(page, []string{"Output_Data_(Read)"}, 0); ok {
		t.Fatal("expected miss")
	}
}
