package identity

import (
	"strings"
	"testing"
)

func strOf(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func hashOf(p *int64) int64 {
	if p == nil {
		return -1 << 62
	}
	return *p
}

func TestVisibleTextStripsMarkup(t *testing.T) {
	page := `<div><b>Item&nbsp;Hash</b>
	<td>435685051</td><script>var x = "Item Hash 1";</script><style>.a{}</style><p>Item Name</p><p>StructurePipeAnalysizer</p></div>`
	got := VisibleText(page, 0, len(page))
	want := "Item Hash 435685051 Item Name StructurePipeAnalysizer"
	if got != want {
		t.Fatalf("VisibleText = %q, want %q", got, want)
	}
}

func TestVisibleTextClampsOffsets(t *testing.T) {
	page := "<p>héllo</p>"
	if got := VisibleText(page, -10, 1000); got != "héllo" {
		t.Fatalf("got %q", got)
	}
	if got := VisibleText(page, 5, 2); got != "" {
		t.Fatalf("inverted range should be empty, got %q", got)
	}
}

func TestResolveLastOccurrenceWins(t *testing.T) {
	text := "Item Hash 111 Item Name OldName Other text Item Hash 435685051 Item Name StructurePipeAnalysizer"
	id := Resolve(text, "")
	if strOf(id.ItemName) != "StructurePipeAnalysizer" || hashOf(id.ItemHash) != 435685051 {
		t.Fatalf("got %s/%d", strOf(id.ItemName), hashOf(id.ItemHash))
	}
}

func TestResolveFallsBackToPrefabLabels(t *testing.T) {
	id := Resolve("Prefab Hash -1252983604 Prefab Name StructureGasSensor", "")
	if strOf(id.ItemName) != "StructureGasSensor" || hashOf(id.ItemHash) != -1252983604 {
		t.Fatalf("got %s/%d", strOf(id.ItemName), hashOf(id.ItemHash))
	}
}

func TestResolveKeepsPartialIdentity(t *testing.T) {
	id := Resolve("Item Hash 42 and Prefab Name Ignored", "")
	if id.ItemName != nil || hashOf(id.ItemHash) != 42 {
		t.Fatalf("got %s/%d", strOf(id.ItemName), hashOf(id.ItemHash))
	}
	if id := Resolve("nothing here", ""); !id.IsZero() {
		t.Fatalf("expected zero identity, got %+v", id)
	}
}

func TestResolveExpectedPicksNearestHash(t *testing.T) {
	text := strings.Join([]string{
		"Prefab Hash 100 Prefab Name StructureFireSensor",
		"Prefab Hash 200 padding padding Prefab Name StructureGasSensor",
		"Prefab Hash 300 Prefab Name StructureGasSensor",
		"Prefab Hash 400 Prefab Name StructurePressureSensor",
	}, " ")
	id := Resolve(text, "StructureGasSensor")
	if strOf(id.ItemName) != "StructureGasSensor" || hashOf(id.ItemHash) != 300 {
		t.Fatalf("got %s/%d", strOf(id.ItemName), hashOf(id.ItemHash))
	}
}

func TestResolveExpectedRespectsLookbackWindow(t *testing.T) {
	text := "Prefab Hash 7 " + strings.Repeat("x ", LookbackRunes) + "Prefab Name StructureGasSensor Item Hash 9 Item Name Fallback"
	id := Resolve(text, "StructureGasSensor")
	if strOf(id.ItemName) != "Fallback" || hashOf(id.ItemHash) != 9 {
		t.Fatalf("hash outside the window must not bind, got %s/%d", strOf(id.ItemName), hashOf(id.ItemHash))
	}
}

func TestResolveExpectedUsesItemLabels(t *testing.T) {
	text := "Item Hash 55 Item Name StructureGasSensor"
	id := Resolve(text, "StructureGasSensor")
	if strOf(id.ItemName) != "StructureGasSensor" || hashOf(id.ItemHash) != 55 {
		t.Fatalf("got %s/%d", strOf(id.ItemName), hashOf(id.ItemHash))
	}
}

func TestResolveExpectedIsWholeWordAndCaseInsensitive(t *testing.T) {
	id := Resolve("prefab hash 12 prefab name StructureGasSensorLarge", "StructureGasSensor")
	if strOf(id.ItemName) != "StructureGasSensorLarge" {
		t.Fatalf("prefix of a longer name must not bind, got %s", strOf(id.ItemName))
	}
	id = Resolve("PREFAB HASH 12 PREFAB NAME structuregassensor", "StructureGasSensor")
	if strOf(id.ItemName) != "StructureGasSensor" || hashOf(id.ItemHash) != 12 {
		t.Fatalf("got %s/%d", strOf(id.ItemName), hashOf(id.ItemHash))
	}
}

func TestResolveUnparseableHashIsNull(t *testing.T) {
	id := Resolve("Prefab Hash 1-2 Prefab Name StructureGasSensor", "StructureGasSensor")
	if strOf(id.ItemName) != "StructureGasSensor" || id.ItemHash != nil {
		t.Fatalf("got %s/%d", strOf(id.ItemName), hashOf(id.ItemHash))
	}
}

func TestFromSectionSearchesWholePageFirst(t *testing.T) {
	page := `<p>Prefab Hash 77</p><p>Prefab Name StructureGasSensor</p>` +
		`<h2 id="Gas_Sensor">Gas Sensor</h2>`
	anchor := strings.Index(page, `id="Gas_Sensor"`)
	id := FromSection(page, anchor, "StructureGasSensor")
	if strOf(id.ItemName) != "StructureGasSensor" || hashOf(id.ItemHash) != 77 {
		t.Fatalf("got %s/%d", strOf(id.ItemName), hashOf(id.ItemHash))
	}
}

func TestFromPage(t *testing.T) {
	page := `<table><tr><th>Item Hash</th><td>435685051</td></tr><tr><th>Item Name</th><td>StructurePipeAnalysizer</td></tr></table>`
	id := FromPage(page)
	if strOf(id.ItemName) != "StructurePipeAnalysizer" || hashOf(id.ItemHash) != 435685051 {
		t.Fatalf("got %s/%d", strOf(id.ItemName), hashOf(id.ItemHash))
	}
}
