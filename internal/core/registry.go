package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ludo-technologies/add-skills/internal/logging"
)

const (
	// DefaultRegistryURL is the curated skill registry.
	DefaultRegistryURL = "https://raw.githubusercontent.com/ludo-technologies/add-skills/main/registry.json"

	registryTimeout = 10 * time.Second
	registryMaxSize = 10 << 20
)

// RegistryClient fetches the curated skill registry over HTTP.
type RegistryClient struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewRegistryClient creates a client for the registry at url, or
// DefaultRegistryURL when url is empty. A nil logger discards output.
func NewRegistryClient(url string, logger *slog.Logger) *RegistryClient {
	if url == "" {
		url = DefaultRegistryURL
	}
	return &RegistryClient{
		url:    url,
		client: &http.Client{Timeout: registryTimeout},
		logger: logging.OrDiscard(logger),
	}
}

// URL returns the registry location.
func (rc *RegistryClient) URL() string { return rc.url }

// FetchRegistry fetches and parses the registry at url with a default client.
func FetchRegistry(ctx context.Context, url string) ([]RegistryEntry, error) {
	return NewRegistryClient(url, nil).Fetch(ctx)
}

// Fetch downloads and parses the registry.
//
// Transport failures, non-2xx responses and timeouts yield a
// *RegistryFetchError; malformed payloads yield a *RegistryParseError.
func (rc *RegistryClient) Fetch(ctx context.Context) ([]RegistryEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rc.url, nil)
	if err != nil {
		return nil, &RegistryFetchError{URL: rc.url, Msg: "invalid registry URL", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "add-skills")

	rc.logger.Debug("fetching registry", "url", rc.url)
	resp, err := rc.client.Do(req)
	if err != nil {
		return nil, &RegistryFetchError{URL: rc.url, Msg: "failed to connect", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RegistryFetchError{
			URL: rc.url,
			Msg: fmt.Sprintf("HTTP error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, registryMaxSize))
	if err != nil {
		return nil, &RegistryFetchError{URL: rc.url, Msg: "reading response", Err: err}
	}

	entries, err := ParseRegistry(body)
	if err != nil {
		return nil, err
	}
	rc.logger.Debug("fetched registry", "url", rc.url, "entries", len(entries))
	return entries, nil
}

// ParseRegistry decodes a registry document: a JSON array of objects, each
// with at least "name" and "repo". Parsing stops at the first bad element.
func ParseRegistry(data []byte) ([]RegistryEntry, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return nil, &RegistryParseError{Index: -1, Msg: "invalid JSON", Err: err}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &RegistryParseError{Index: -1, Msg: "registry must be a JSON array"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &RegistryParseError{Index: -1, Msg: "registry must be a JSON array", Err: err}
	}

	entries := make([]RegistryEntry, 0, len(items))
	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, &RegistryParseError{
				Index: i,
				Msg:   fmt.Sprintf("entry %d must be an object, got %s", i, jsonKind(item)),
			}
		}

		var missing []string
		for _, key := range []string{"name", "repo"} {
			if _, ok := fields[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			return nil, &RegistryParseError{
				Index: i,
				Msg:   fmt.Sprintf("entry %d missing required fields: %s", i, strings.Join(missing, ", ")),
			}
		}

		var entry RegistryEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			return nil, &RegistryParseError{Index: i, Msg: fmt.Sprintf("entry %d has invalid fields", i), Err: err}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SearchRegistry filters entries by keyword, preserving order.
// An empty keyword returns entries unchanged.
func SearchRegistry(entries []RegistryEntry, keyword string) []RegistryEntry {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return entries
	}
	var out []RegistryEntry
	for _, e := range entries {
		if e.Matches(keyword) {
			out = append(out, e)
		}
	}
	return out
}

// jsonKind names the JSON type of a raw value for error messages.
func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "nothing"
	}
	switch trimmed[0] {
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
