package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const sampleDoc = `{
  "generated_at_utc": "2025-06-01T12:00:00+00:00",
  "top_n": 20,
  "levels": {
    "2": [{"team": ["A", "B", "C"], "bronze_count": 1}],
    "3": [{"team": ["A", "D"]}],
    "10": [{"team": ["E"], "bronze_traits": ["Ionia", "Noxus"], "team_size": 10, "max_cost_allowed": 5}]
  }
}`

func TestParse_Sample(t *testing.T) {
	ds, err := Parse([]byte(sampleDoc), "sample.json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(ds.Levels) != 3 {
		t.Fatalf("len(Levels) = %d, want 3", len(ds.Levels))
	}
	if ds.GeneratedAt != "2025-06-01T12:00:00+00:00" {
		t.Errorf("GeneratedAt = %q", ds.GeneratedAt)
	}
	if ds.TopN != 20 {
		t.Errorf("TopN = %d, want 20", ds.TopN)
	}

	comp := ds.Levels["10"][0]
	if comp.TeamSize == nil || *comp.TeamSize != 10 {
		t.Errorf("TeamSize = %v, want 10", comp.TeamSize)
	}
	if comp.MaxCostAllowed == nil || *comp.MaxCostAllowed != 5 {
		t.Errorf("MaxCostAllowed = %v, want 5", comp.MaxCostAllowed)
	}
	if got := comp.ResolvedBronzeCount(); got != 2 {
		t.Errorf("ResolvedBronzeCount() = %d, want 2 (from traits)", got)
	}
	if got := ds.Levels["2"][0].ResolvedBronzeCount(); got != 1 {
		t.Errorf("explicit bronze_count = %d, want 1", got)
	}
}

func TestParse_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{"levels": `},
		{"top-level array", `[1, 2, 3]`},
		{"top-level null", `null`},
		{"missing levels", `{"comps": {}}`},
		{"null levels", `{"levels": null}`},
		{"levels is array", `{"levels": [[{"team": ["A"]}]]}`},
		{"levels is string", `{"levels": "2"}`},
		{"level is object", `{"levels": {"2": {"team": ["A"]}}}`},
		{"non-integer key", `{"levels": {"two": []}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse([]byte(tt.doc), "doc.json")
			if err == nil {
				t.Fatalf("Parse() = %v, want ShapeError", ds)
			}
			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("error type = %T, want *ShapeError", err)
			}
		})
	}
}

func TestParse_CanonicalShapeMessage(t *testing.T) {
	_, err := Parse([]byte(`{"data": 1}`), "doc.json")
	if err == nil || err.Error() != ShapeMessage {
		t.Errorf("error = %v, want %q", err, ShapeMessage)
	}
}

func TestParse_TolerantComps(t *testing.T) {
	doc := `{"levels": {
		"4": [
			{"team": ["X"], "bronze_count": "n/a"},
			{"team": "X,Y", "bronze_traits": "Ionia"},
			{"team": ["X", 7, "Y"], "bronze_count": null, "bronze_traits": ["Void", 1]},
			42,
			null,
			{"team": ["Z"], "bronze_count": "3", "team_size": "big"}
		],
		"5": null
	}}`

	ds, err := Parse([]byte(doc), "doc.json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	comps := ds.Levels["4"]
	if len(comps) != 6 {
		t.Fatalf("len(comps) = %d, want 6", len(comps))
	}

	if got := comps[0].ResolvedBronzeCount(); got != 0 {
		t.Errorf("non-numeric bronze_count resolved to %d, want 0", got)
	}
	if len(comps[1].Team) != 0 || len(comps[1].BronzeTraits) != 0 {
		t.Errorf("non-array fields should decode empty, got %+v", comps[1])
	}
	if want := []string{"X", "Y"}; !equalStrings(comps[2].Team, want) {
		t.Errorf("Team = %v, want %v", comps[2].Team, want)
	}
	if got := comps[2].ResolvedBronzeCount(); got != 1 {
		t.Errorf("null bronze_count should fall back to traits, got %d", got)
	}
	if len(comps[3].Team) != 0 || len(comps[4].Team) != 0 {
		t.Error("non-object comps should decode to empty comps")
	}
	if got := comps[5].ResolvedBronzeCount(); got != 3 {
		t.Errorf("numeric string bronze_count = %d, want 3", got)
	}
	if comps[5].TeamSize != nil {
		t.Errorf("non-numeric team_size = %v, want nil", *comps[5].TeamSize)
	}

	if got := SelectLevel(ds, "5"); got == nil || len(got) != 0 {
		t.Errorf("null level = %v, want empty", got)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best_levels_2_5.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ds.Levels) != 3 {
		t.Errorf("len(Levels) = %d, want 3", len(ds.Levels))
	}
}

func TestLoader_LoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoader_LoadRemote(t *testing.T) {
	var gotCache string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCache = r.Header.Get("Cache-Control")
		switch r.URL.Path {
		case "/data.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleDoc))
		case "/bad.json":
			_, _ = w.Write([]byte(`{"nope": true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := NewLoaderWithClient(srv.Client())

	t.Run("success", func(t *testing.T) {
		ds, err := loader.Load(context.Background(), srv.URL+"/data.json")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(ds.Levels) != 3 {
			t.Errorf("len(Levels) = %d, want 3", len(ds.Levels))
		}
		if gotCache != "no-store" {
			t.Errorf("Cache-Control = %q, want no-store", gotCache)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := loader.Load(context.Background(), srv.URL+"/missing.json")
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("error = %v, want *LoadError", err)
		}
		if want := "Failed to load JSON: 404 Not Found"; err.Error() != want {
			t.Errorf("message = %q, want %q", err.Error(), want)
		}
	})

	t.Run("bad shape", func(t *testing.T) {
		_, err := loader.Load(context.Background(), srv.URL+"/bad.json")
		var shapeErr *ShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("error = %v, want *ShapeError", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := loader.Load(ctx, srv.URL+"/data.json")
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("error = %v, want *LoadError", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error should wrap context.Canceled, got %v", err)
		}
	})
}

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"http://example.com/a.json":  true,
		"HTTPS://example.com/a.json": true,
		"./best_levels_2_5.json":     false,
		"/tmp/http.json":             false,
	}
	for src, want := range tests {
		if got := IsRemote(src); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", src, got, want)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
