package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func serveRegistry(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRegistry(t *testing.T) {
	srv := serveRegistry(t, http.StatusOK, `[
		{"name": "pytest-helper", "repo": "acme/pytest-helper", "description": "Write tests", "tags": ["python", "test"]},
		{"name": "web-deploy", "repo": "acme/web-deploy"}
	]`)

	entries, err := FetchRegistry(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchRegistry() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	want := RegistryEntry{Name: "pytest-helper", Repo: "acme/pytest-helper", Description: "Write tests", Tags: []string{"python", "test"}}
	if !reflect.DeepEqual(entries[0], want) {
		t.Errorf("entries[0] = %+v, want %+v", entries[0], want)
	}
	if entries[1].Description != "" || len(entries[1].Tags) != 0 {
		t.Errorf("optional fields should default to empty, got %+v", entries[1])
	}
}

func TestFetchRegistry_HTTPError(t *testing.T) {
	srv := serveRegistry(t, http.StatusNotFound, "not found")

	_, err := FetchRegistry(context.Background(), srv.URL)
	var fe *RegistryFetchError
	if !errors.As(err, &fe) {
		t.Fatalf("FetchRegistry() error = %v, want *RegistryFetchError", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should mention the status, got: %v", err)
	}
}

func TestFetchRegistry_ConnectionError(t *testing.T) {
	srv := serveRegistry(t, http.StatusOK, "[]")
	url := srv.URL
	srv.Close()

	_, err := FetchRegistry(context.Background(), url)
	var fe *RegistryFetchError
	if !errors.As(err, &fe) {
		t.Fatalf("FetchRegistry() error = %v, want *RegistryFetchError", err)
	}
}

func TestFetchRegistry_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIdx int
		wantMsg string
	}{
		{"invalid json", "{not json", -1, "invalid JSON"},
		{"not an array", `{"name": "x", "repo": "y"}`, -1, "JSON array"},
		{"missing name", `[{"repo":"x"}]`, 0, "missing required fields: name"},
		{"missing both", `[{"name":"a","repo":"b"}, {}]`, 1, "missing required fields: name, repo"},
		{"element not object", `[{"name":"a","repo":"b"}, "oops"]`, 1, "must be an object, got string"},
		{"null element", `[null]`, 0, "must be an object, got null"},
		{"wrong field type", `[{"name": 1, "repo": "b"}]`, 0, "invalid fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveRegistry(t, http.StatusOK, tt.body)

			_, err := FetchRegistry(context.Background(), srv.URL)
			var pe *RegistryParseError
			if !errors.As(err, &pe) {
				t.Fatalf("FetchRegistry() error = %v, want *RegistryParseError", err)
			}
			if pe.Index != tt.wantIdx {
				t.Errorf("Index = %d, want %d", pe.Index, tt.wantIdx)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseRegistry_Empty(t *testing.T) {
	entries, err := ParseRegistry([]byte("[]"))
	if err != nil {
		t.Fatalf("ParseRegistry() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestNewRegistryClient_DefaultURL(t *testing.T) {
	if got := NewRegistryClient("", nil).URL(); got != DefaultRegistryURL {
		t.Errorf("URL() = %q, want %q", got, DefaultRegistryURL)
	}
}

func TestSearchRegistry(t *testing.T) {
	entries := []RegistryEntry{
		{Name: "pytest-helper", Tags: []string{"python", "test"}},
		{Name: "web-deploy", Tags: []string{"js"}},
	}

	got := SearchRegistry(entries, "python")
	if len(got) != 1 || got[0].Name != "pytest-helper" {
		t.Errorf("SearchRegistry(python) = %+v, want only pytest-helper", got)
	}

	all := SearchRegistry(entries, "")
	if !reflect.DeepEqual(all, entries) {
		t.Errorf("SearchRegistry(\"\") = %+v, want all entries in order", all)
	}
}

func TestSearchRegistry_MatchesFields(t *testing.T) {
	entries := []RegistryEntry{
		{Name: "Alpha", Description: "first"},
		{Name: "beta", Description: "Deploys to the CLOUD"},
		{Name: "gamma", Tags: []string{"Cloud-Native"}},
		{Name: "delta"},
	}

	tests := []struct {
		keyword string
		want    []string
	}{
		{"alpha", []string{"Alpha"}},
		{"cloud", []string{"beta", "gamma"}},
		{"  cloud  ", []string{"beta", "gamma"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			var names []string
			for _, e := range SearchRegistry(entries, tt.keyword) {
				names = append(names, e.Name)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("SearchRegistry(%q) = %v, want %v", tt.keyword, names, tt.want)
			}
		})
	}
}
