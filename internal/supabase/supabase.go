package supabase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"

	"mspro-labs/dine-sync/internal/models"
)

// Client talks to the project's PostgREST endpoint with the service role key.
type Client struct {
	rest *postgrest.Client
}

// NewClient builds a client for the given project URL (e.g.
// https://xyz.supabase.co). The service key is sent both as apikey and as a
// bearer token, which is what PostgREST expects from service-role callers.
func NewClient(baseURL, serviceKey string) *Client {
	headers := map[string]string{
		"apikey": serviceKey,
	}
	rest := postgrest.NewClient(strings.TrimRight(baseURL, "/")+"/rest/v1", "", headers)
	rest.SetAuthToken(serviceKey)
	return &Client{rest: rest}
}

// ProfileExists checks the foreign key before an import: restaurants.profile_id
// must reference an existing row in public.profiles.
func (c *Client) ProfileExists(profileID string) (bool, error) {
	data, _, err := c.rest.From("profiles").
		Select("id", "", false).
		Eq("id", profileID).
		Limit(1, "").
		Execute()
	if err != nil {
		return false, fmt.Errorf("profile check failed: %w", err)
	}

	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return false, fmt.Errorf("profile check returned unexpected body: %w", err)
	}
	return len(rows) > 0, nil
}

// UpsertRestaurants merges one chunk of rows into the restaurants table,
// keyed on (profile_id, name). Existing rows are overwritten
// (resolution=merge-duplicates) and no body is returned.
func (c *Client) UpsertRestaurants(rows []models.UpsertRow) error {
	if len(rows) == 0 {
		return nil
	}
	_, _, err := c.rest.From("restaurants").
		Upsert(rows, "profile_id,name", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("upsert of %d rows failed: %w", len(rows), err)
	}
	return nil
}
