package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Restaurant holds one parsed workbook row, ready for transmission.
type Restaurant struct {
	Name         string
	Neighborhood *string
	PriceLevel   *int
	VibeTags     []string
	Notes        *string
}

// UpsertRow is the JSON payload shape the restaurants table expects.
type UpsertRow struct {
	ProfileID    string   `json:"profile_id"`
	Name         string   `json:"name"`
	Neighborhood *string  `json:"neighborhood"`
	PriceLevel   *int     `json:"price_level"`
	VibeTags     []string `json:"vibe_tags"`
	Status       string   `json:"status"`
	Notes        *string  `json:"notes"`
}

// UpsertRow attaches the owning profile and listing status to a parsed row.
func (r Restaurant) UpsertRow(profileID, status string) UpsertRow {
	return UpsertRow{
		ProfileID:    profileID,
		Name:         r.Name,
		Neighborhood: r.Neighborhood,
		PriceLevel:   r.PriceLevel,
		VibeTags:     r.VibeTags,
		Status:       status,
		Notes:        r.Notes,
	}
}

// NormalizeProfileID accepts a hyphenated UUID or a numeric shorthand
// (e.g. "0001") and returns the canonical lowercase UUID the profiles table
// uses. Shorthands expand into the tail of the zero UUID:
// 0001 -> 00000000-0000-0000-0000-000000000001. Shorthands wider than the
// 12-digit tail are rejected rather than widened into a non-UUID.
func NormalizeProfileID(raw string) (string, error) {
	token := strings.TrimSpace(raw)

	// Only the plain 36-char form; no braces, urn: prefixes, or bare hex
	if len(token) == 36 {
		if id, err := uuid.Parse(token); err == nil {
			return id.String(), nil
		}
	}

	if token != "" && isDigits(token) {
		if len(strings.TrimLeft(token, "0")) > 12 {
			return "", fmt.Errorf("profile id %q does not fit the 12-digit shorthand tail", raw)
		}
		tail, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return "", fmt.Errorf("profile id %q is not a valid numeric shorthand", raw)
		}
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", tail), nil
	}

	return "", fmt.Errorf("profile id %q is not a UUID or numeric shorthand (e.g. 0001)", raw)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
