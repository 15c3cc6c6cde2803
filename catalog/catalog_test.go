package catalog

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

const directoryJSON = `{
  "us-east1": {"Region": "us-east1", "RegionName": "South Carolina", "URL": "https://us-east1.example.com"},
  "europe-west1": {"Region": "europe-west1", "RegionName": "Belgium", "URL": "https://europe-west1.example.com"},
  "asia-east1": {"Region": "asia-east1", "RegionName": "Taiwan", "URL": "https://asia-east1.example.com"}
}`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(directoryJSON))
	}))
	defer srv.Close()

	entries, err := Fetch(srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Entry{
		{Region: "asia-east1", RegionName: "Taiwan", URL: "https://asia-east1.example.com"},
		{Region: "europe-west1", RegionName: "Belgium", URL: "https://europe-west1.example.com"},
		{Region: "us-east1", RegionName: "South Carolina", URL: "https://us-east1.example.com"},
	}
	if !reflect.DeepEqual(expected, entries) {
		t.Errorf("expected %v, got %v", expected, entries)
	}
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := Fetch(srv.Client(), srv.URL); err == nil {
		t.Error("expected error for status 404")
	}
}

func TestFetchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	if _, err := Fetch(srv.Client(), srv.URL); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestFetchUnreachable(t *testing.T) {
	client := &http.Client{Timeout: 100 * time.Millisecond}

	if _, err := Fetch(client, "http://127.0.0.1:0"); err == nil {
		t.Error("expected error for unreachable directory")
	}
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{Region: "asia-east1"},
		{Region: "europe-west1"},
		{Region: "us-east1"},
	}

	tests := []struct {
		name     string
		ids      []string
		expected []string
	}{
		{
			name:     "empty selects all",
			ids:      []string{},
			expected: []string{"asia-east1", "europe-west1", "us-east1"},
		},
		{
			name:     "subset keeps directory order",
			ids:      []string{"us-east1", "asia-east1"},
			expected: []string{"asia-east1", "us-east1"},
		},
		{
			name:     "unknown ids are dropped",
			ids:      []string{"us-east1", "mars-north1"},
			expected: []string{"us-east1"},
		},
		{
			name:     "no match",
			ids:      []string{"mars-north1"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(entries, tt.ids)

			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.Region)
			}
			if !reflect.DeepEqual(tt.expected, ids) {
				t.Errorf("expected %v, got %v", tt.expected, ids)
			}
		})
	}
}
