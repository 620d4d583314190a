package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Loader fetches and parses comp documents from a file path or an HTTP URL.
type Loader struct {
	client *http.Client
}

// NewLoader creates a Loader. No fetch timeout is applied; cancel ctx instead.
func NewLoader() *Loader {
	return &Loader{client: &http.Client{}}
}

// NewLoaderWithClient creates a Loader that uses client for remote sources.
func NewLoaderWithClient(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{}
	}
	return &Loader{client: client}
}

// IsRemote reports whether source is fetched over HTTP.
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load fetches source and parses it into a Dataset. Failures are *LoadError
// or *ShapeError; there is no retry.
func (l *Loader) Load(ctx context.Context, source string) (*Dataset, error) {
	var (
		data []byte
		err  error
	)
	if IsRemote(source) {
		data, err = l.fetchRemote(ctx, source)
	} else {
		data, err = l.readFile(source)
	}
	if err != nil {
		return nil, err
	}
	return Parse(data, source)
}

func (l *Loader) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LoadError{Source: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &LoadError{Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{
			Source: url,
			Status: resp.Status,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Source: url, Err: fmt.Errorf("reading response body: %w", err)}
	}
	return data, nil
}

func (l *Loader) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return data, nil
}

// Parse decodes a comp document and checks its top-level shape:
// an object whose "levels" member maps integer keys to arrays (or null).
// Individual comps are decoded tolerantly and never fail.
func Parse(data []byte, source string) (*Dataset, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ShapeError{Source: source, Reason: ShapeMessage}
		}
		return nil, &ShapeError{Source: source, Reason: "document is not valid JSON", Err: err}
	}

	rawLevels, ok := top["levels"]
	if !ok || isNull(rawLevels) {
		return nil, &ShapeError{Source: source, Reason: ShapeMessage}
	}

	var levelDocs map[string]json.RawMessage
	if err := json.Unmarshal(rawLevels, &levelDocs); err != nil {
		return nil, &ShapeError{Source: source, Reason: ShapeMessage}
	}

	levels := make(map[string][]Comp, len(levelDocs))
	for key, raw := range levelDocs {
		if _, err := strconv.Atoi(key); err != nil {
			return nil, &ShapeError{Source: source, Reason: fmt.Sprintf("level key %q is not an integer", key)}
		}
		if isNull(raw) {
			levels[key] = []Comp{}
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &ShapeError{Source: source, Reason: fmt.Sprintf("level %q is not an array of comps", key)}
		}

		comps := make([]Comp, len(items))
		for i, item := range items {
			// Comp.UnmarshalJSON never returns an error.
			_ = json.Unmarshal(item, &comps[i])
		}
		levels[key] = comps
	}

	ds := New(levels)
	ds.GeneratedAt, ds.TopN = parseMetadata(top)
	return ds, nil
}

func parseMetadata(top map[string]json.RawMessage) (generatedAt string, topN int) {
	if raw, ok := top["generated_at_utc"]; ok {
		_ = json.Unmarshal(raw, &generatedAt)
	}
	if raw, ok := top["top_n"]; ok {
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			topN = ToNonNegativeInt(v, 0)
		}
	}
	return generatedAt, topN
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
