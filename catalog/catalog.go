package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

// DefaultURL points at the public directory of Google Cloud probe endpoints.
const DefaultURL = "https://gcping.com/api/endpoints"

// Entry describes one region as published by the directory.
type Entry struct {
	Region     string `json:"Region"`
	RegionName string `json:"RegionName"`
	URL        string `json:"URL"`
}

// Fetch retrieves and decodes the region directory. The directory is a JSON
// object keyed by region id; entries are returned sorted by id so callers
// get a stable order. Transport, status and decode errors are returned to
// the caller, there is no retry.
func Fetch(client *http.Client, url string) ([]Entry, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("could not fetch region directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status: %s", resp.Status)
	}

	byID := make(map[string]Entry)
	if err := json.NewDecoder(resp.Body).Decode(&byID); err != nil {
		return nil, fmt.Errorf("could not decode region directory: %w", err)
	}

	entries := make([]Entry, 0, len(byID))
	for _, e := range byID {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Region < entries[j].Region
	})

	return entries, nil
}

// Filter returns the entries whose region id is in ids, keeping the input
// order. An empty id list selects every entry.
func Filter(entries []Entry, ids []string) []Entry {
	if len(ids) == 0 {
		return entries
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	selected := make([]Entry, 0, len(ids))
	for _, e := range entries {
		if _, found := wanted[e.Region]; found {
			selected = append(selected, e)
		}
	}

	return selected
}
