package workbook

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"mspro-labs/dine-sync/internal/config"
)

func TestNormalizeTag(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Cozy", "cozy"},
		{"  Date Night!  ", "date night"},
		{"Farm-to-Table", "farm-to-table"},
		{"Tacos & Tequila", "tacos tequila"},
		{"CRÈME", "cr me"},
		{"***", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := normalizeTag(tc.input); got != tc.expected {
			t.Errorf("normalizeTag(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestSplitTags(t *testing.T) {
	testCases := []struct {
		name     string
		vibes    string
		cuisine  string
		expected []string
	}{
		{
			name:     "vibes plus coarse cuisine signals",
			vibes:    "Cozy, Date Night",
			cuisine:  "Italian (Northern)",
			expected: []string{"cozy", "date night", "italian", "northern"},
		},
		{
			name:     "duplicates keep first appearance",
			vibes:    "Italian, cozy, Cozy",
			cuisine:  "Italian/Pizza",
			expected: []string{"italian", "cozy", "pizza"},
		},
		{
			name:     "empty cells",
			vibes:    "",
			cuisine:  "",
			expected: nil,
		},
		{
			name:     "cuisine only",
			vibes:    "",
			cuisine:  "New American",
			expected: []string{"new american"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := splitTags(tc.vibes, tc.cuisine)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("splitTags(%q, %q): expected %v, got %v", tc.vibes, tc.cuisine, tc.expected, got)
			}
		})
	}
}

func TestParsePriceLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected int // 0 means absent
	}{
		{"$", 1},
		{"$$", 2},
		{"$$$$", 4},
		{"$$$$$", 0},
		{"cheap", 0},
		{"", 0},
	}

	for _, tc := range testCases {
		got := parsePriceLevel(tc.input)
		if tc.expected == 0 {
			if got != nil {
				t.Errorf("parsePriceLevel(%q): expected absent, got %d", tc.input, *got)
			}
			continue
		}
		if got == nil || *got != tc.expected {
			t.Errorf("parsePriceLevel(%q): expected %d, got %v", tc.input, tc.expected, got)
		}
	}
}

func TestParseGoogleRating(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
		absent   bool
	}{
		{"4.7", 4.7, false},
		{"Google 4.5", 4.5, false},
		{"5", 5, false},
		{"4.7 stars", 0, true}, // rating must anchor the end of the cell
		{"n/a", 0, true},
		{"", 0, true},
	}

	for _, tc := range testCases {
		got := parseGoogleRating(tc.input)
		if tc.absent {
			if got != nil {
				t.Errorf("parseGoogleRating(%q): expected absent, got %v", tc.input, *got)
			}
			continue
		}
		if got == nil || *got != tc.expected {
			t.Errorf("parseGoogleRating(%q): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}

func TestComposeNotes(t *testing.T) {
	if got := composeNotes("", "", ""); got != nil {
		t.Errorf("expected nil notes for empty cells, got %q", *got)
	}

	got := composeNotes("Italian", "4.7", "Eater, 5280")
	want := "Cuisine: Italian | Google rating: 4.7 | Sources: Eater, 5280"
	if got == nil || *got != want {
		t.Errorf("composeNotes: expected %q, got %v", want, got)
	}

	got = composeNotes("Thai", "no rating", "")
	want = "Cuisine: Thai"
	if got == nil || *got != want {
		t.Errorf("composeNotes: expected %q, got %v", want, got)
	}
}

// writeFixture builds a small workbook with the curated layout: three header
// rows, then data in columns B..H.
func writeFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	set := func(cell, value string) {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("SetCellValue(%s): %v", cell, err)
		}
	}

	// Header rows (title, source, column headers)
	set("B1", "Top 100 Denver Restaurants")
	set("B2", "Compiled from local guides")
	set("B3", "Name")
	set("C3", "Price")
	set("D3", "Neighborhood")
	set("E3", "Google")
	set("F3", "Cuisine")
	set("G3", "Vibes")
	set("H3", "Sources")

	// Row 4: fully populated
	set("B4", "Safta")
	set("C4", "$$$")
	set("D4", "RiNo")
	set("E4", "4.6")
	set("F4", "Israeli (Modern)")
	set("G4", "Lively, Date Night")
	set("H4", "Eater")

	// Row 5: spacer (no name), must be skipped
	set("D5", "LoDo")

	// Row 6: sparse row
	set("B6", "La Diabla")
	set("C6", "$$$$$") // out of range, level absent

	path := filepath.Join(t.TempDir(), "restaurants.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestParse(t *testing.T) {
	path := writeFixture(t)

	items, err := Parse(path, config.DefaultSheetConfig())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Spacer row is dropped, so 2 restaurants remain
	if len(items) != 2 {
		t.Fatalf("expected 2 restaurants, got %d", len(items))
	}

	first := items[0]
	if first.Name != "Safta" {
		t.Errorf("Name: expected 'Safta', got %q", first.Name)
	}
	if first.Neighborhood == nil || *first.Neighborhood != "RiNo" {
		t.Errorf("Neighborhood: expected 'RiNo', got %v", first.Neighborhood)
	}
	if first.PriceLevel == nil || *first.PriceLevel != 3 {
		t.Errorf("PriceLevel: expected 3, got %v", first.PriceLevel)
	}
	wantTags := []string{"lively", "date night", "israeli", "modern"}
	if !reflect.DeepEqual(first.VibeTags, wantTags) {
		t.Errorf("VibeTags: expected %v, got %v", wantTags, first.VibeTags)
	}
	wantNotes := "Cuisine: Israeli (Modern) | Google rating: 4.6 | Sources: Eater"
	if first.Notes == nil || *first.Notes != wantNotes {
		t.Errorf("Notes: expected %q, got %v", wantNotes, first.Notes)
	}

	second := items[1]
	if second.Name != "La Diabla" {
		t.Errorf("Name: expected 'La Diabla', got %q", second.Name)
	}
	if second.PriceLevel != nil {
		t.Errorf("PriceLevel: expected absent for five dollar signs, got %d", *second.PriceLevel)
	}
	if second.Neighborhood != nil {
		t.Errorf("Neighborhood: expected absent, got %q", *second.Neighborhood)
	}
	if second.Notes != nil {
		t.Errorf("Notes: expected absent, got %q", *second.Notes)
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "nope.xlsx"), config.DefaultSheetConfig()); err == nil {
		t.Fatal("expected an error for a missing workbook")
	}
}

func TestResolveColumnsBadLetter(t *testing.T) {
	cols := config.DefaultSheetConfig().Columns
	cols.Vibes = "7"
	if _, err := resolveColumns(cols); err == nil {
		t.Fatal("expected an error for a non-alphabetic column letter")
	}
}
