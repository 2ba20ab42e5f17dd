package workbook

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"mspro-labs/dine-sync/internal/config"
	"mspro-labs/dine-sync/internal/models"
)

var logger = log.New(os.Stdout, "WORKBOOK: ", log.LstdFlags|log.Lshortfile)

// Parse extracts restaurant rows from the .xlsx file at path, using the
// column mapping in cfg. Rows above the header boundary and rows without a
// name are skipped.
func Parse(path string, cfg *config.SheetConfig) ([]models.Restaurant, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := cfg.Sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook has no worksheets")
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet '%s': %w", sheet, err)
	}

	cols, err := resolveColumns(cfg.Columns)
	if err != nil {
		return nil, err
	}

	var out []models.Restaurant
	for i, row := range rows {
		if i < cfg.HeaderRows {
			continue
		}

		name := cell(row, cols.name)
		if name == "" {
			// Spacer or decoration row
			continue
		}

		cuisine := cell(row, cols.cuisine)
		item := models.Restaurant{
			Name:         name,
			Neighborhood: optional(cell(row, cols.neighborhood)),
			PriceLevel:   parsePriceLevel(cell(row, cols.price)),
			VibeTags:     splitTags(cell(row, cols.vibes), cuisine),
			Notes:        composeNotes(cuisine, cell(row, cols.rating), cell(row, cols.sources)),
		}
		out = append(out, item)
	}

	logger.Printf("Parsed %d restaurants from sheet '%s'", len(out), sheet)
	return out, nil
}

// colIndexes holds the zero-based index of each mapped column.
type colIndexes struct {
	name, price, neighborhood, rating, cuisine, vibes, sources int
}

func resolveColumns(c config.Columns) (colIndexes, error) {
	var idx colIndexes
	for _, m := range []struct {
		field  string
		letter string
		dst    *int
	}{
		{"name", c.Name, &idx.name},
		{"price", c.Price, &idx.price},
		{"neighborhood", c.Neighborhood, &idx.neighborhood},
		{"google_rating", c.GoogleRating, &idx.rating},
		{"cuisine", c.Cuisine, &idx.cuisine},
		{"vibes", c.Vibes, &idx.vibes},
		{"sources", c.Sources, &idx.sources},
	} {
		n, err := excelize.ColumnNameToNumber(strings.ToUpper(strings.TrimSpace(m.letter)))
		if err != nil {
			return idx, fmt.Errorf("bad column letter %q for field %s: %w", m.letter, m.field, err)
		}
		*m.dst = n - 1
	}
	return idx, nil
}

// cell returns the trimmed value at idx, or "" when the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var (
	reTagJunk      = regexp.MustCompile(`[^a-z0-9\-\s]`)
	reSpaces       = regexp.MustCompile(`\s+`)
	reCuisineSplit = regexp.MustCompile(`[()/,]`)
	reRating       = regexp.MustCompile(`([0-5](?:\.\d)?)\s*$`)
)

// normalizeTag lowercases a token and strips everything outside
// [a-z0-9- ], collapsing runs of whitespace.
func normalizeTag(s string) string {
	cleaned := reTagJunk.ReplaceAllString(strings.ToLower(s), " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(cleaned, " "))
}

// splitTags builds the vibe tag list: the vibes cell split on commas, plus
// coarse cuisine signals for recommendation matching,
// e.g. "Italian (Northern)" -> ["italian", "northern"].
// Tags are deduplicated, first appearance wins.
func splitTags(vibes, cuisine string) []string {
	var tags []string
	seen := make(map[string]bool)

	add := func(token string) {
		t := normalizeTag(token)
		if t != "" && !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}

	for _, chunk := range strings.Split(vibes, ",") {
		add(chunk)
	}
	for _, part := range reCuisineSplit.Split(cuisine, -1) {
		add(part)
	}

	return tags
}

// parsePriceLevel counts dollar signs in the price cell. Counts outside 1..4
// mean the level is unknown.
func parsePriceLevel(price string) *int {
	n := strings.Count(price, "$")
	if n < 1 || n > 4 {
		return nil
	}
	return &n
}

// parseGoogleRating pulls a trailing 0-5 rating (one optional decimal) out of
// a cell like "Google 4.7".
func parseGoogleRating(cellText string) *float64 {
	m := reRating.FindStringSubmatch(cellText)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}

// composeNotes folds the leftover columns into a single free-text field.
func composeNotes(cuisine, ratingCell, sources string) *string {
	var parts []string
	if cuisine != "" {
		parts = append(parts, "Cuisine: "+cuisine)
	}
	if g := parseGoogleRating(ratingCell); g != nil {
		parts = append(parts, "Google rating: "+strconv.FormatFloat(*g, 'f', -1, 64))
	}
	if sources != "" {
		parts = append(parts, "Sources: "+sources)
	}
	if len(parts) == 0 {
		return nil
	}
	s := strings.Join(parts, " | ")
	return &s
}
