package graphapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psychonautwiki/bifrost/pkg/media"
	"github.com/psychonautwiki/bifrost/pkg/substance"
	"github.com/psychonautwiki/bifrost/pkg/upstream"
)

// newTestResolver wires a Resolver against a fake MediaWiki API that
// dispatches on the "action" query parameter, using the same
// httptest.NewServer harness as pkg/upstream's tests.
func newTestResolver(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	connector := upstream.New(upstream.Config{
		BaseURL:    srv.URL + "/api.php",
		UserAgent:  "bifrost-test",
		Timeout:    2 * time.Second,
		CacheTTL:   time.Minute,
		MaxRetries: 0,
	})
	return New(connector, media.Config{CDNBaseURL: "https://psychonautwiki.org/", ThumbSize: 100}, nil)
}

func askResultsBody(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	results := map[string]any{}
	for name, url := range entries {
		results[name] = map[string]any{
			"fulltext":  name,
			"fullurl":   url,
			"printouts": map[string]any{},
		}
	}
	body, err := json.Marshal(map[string]any{"query": map[string]any{"results": results}})
	require.NoError(t, err)
	return body
}

func browseBySubjectBody(t *testing.T, subject string, props map[string]string) []byte {
	t.Helper()
	data := make([]map[string]any, 0, len(props))
	for name, value := range props {
		raw, err := json.Marshal(value)
		require.NoError(t, err)
		data = append(data, map[string]any{
			"property": name,
			"dataitem": []map[string]any{{"type": 2, "item": json.RawMessage(raw)}},
		})
	}
	body, err := json.Marshal(map[string]any{"query": map[string]any{"subject": subject, "data": data}})
	require.NoError(t, err)
	return body
}

func TestSubstances_MutualExclusionValidation(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("upstream should not be called when validation fails")
	})

	q := "LSD"
	effect := []string{"Euphoria"}
	_, err := r.Substances(context.Background(), substancesArgs{Query: &q, Effect: &effect})
	assert.Error(t, err)
}

func TestSubstances_QueryBranch_EnrichesResult(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Query().Get("action") {
		case "ask":
			w.Write(askResultsBody(t, map[string]string{
				"LSD": "https://psychonautwiki.org/wiki/LSD",
			}))
		case "browsebysubject":
			w.Write(browseBySubjectBody(t, "LSD", map[string]string{
				"systematic_name": "Lysergic acid diethylamide",
			}))
		default:
			t.Fatalf("unexpected action %q", req.URL.Query().Get("action"))
		}
	})

	q := "LSD"
	out, err := r.Substances(context.Background(), substancesArgs{Query: &q})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "LSD", out[0].Name())
	require.NotNil(t, out[0].SystematicName())
	assert.Equal(t, "Lysergic acid diethylamide", *out[0].SystematicName())
}

func TestSubstances_DefaultListing_SkipsEnrichment(t *testing.T) {
	calls := 0
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		calls++
		assert.Equal(t, "ask", req.URL.Query().Get("action"), "listing must never call browsebysubject")
		w.Write(askResultsBody(t, map[string]string{
			"25I-NBOMe": "https://psychonautwiki.org/wiki/25I-NBOMe",
		}))
	})

	out, err := r.Substances(context.Background(), substancesArgs{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.False(t, out[0].s.Enriched)
	assert.Equal(t, 1, calls)
}

func TestResolveInteractions_StubsOnZeroMatches(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		// Every ask lookup (title, common_name, systematic_name) misses,
		// for any interaction name, so LookupSubstanceByName returns nil.
		w.Write(askResultsBody(t, nil))
	})

	sr := &substanceResolver{s: &substance.Substance{
		Name:                  "MDMA",
		UncertainInteractions: []string{"Unknown Substance"},
	}, deps: r}

	out, err := sr.UncertainInteractions(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Unknown Substance", out[0].Name())
	assert.Equal(t, "", out[0].URL())
}

func TestResolveInteractions_StubsOnMultipleMatches(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write(askResultsBody(t, map[string]string{
			"Alcohol (ethanol)": "https://psychonautwiki.org/wiki/Alcohol",
			"Alcohol (generic)": "https://psychonautwiki.org/wiki/Alcohol_(generic)",
		}))
	})

	sr := &substanceResolver{s: &substance.Substance{
		Name:               "MDMA",
		UnsafeInteractions: []string{"Alcohol"},
	}, deps: r}

	out, err := sr.UnsafeInteractions(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Alcohol", out[0].Name())
}

func TestResolveInteractions_MergesOnSingleMatch(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Query().Get("action") {
		case "ask":
			w.Write(askResultsBody(t, map[string]string{
				"Alcohol": "https://psychonautwiki.org/wiki/Alcohol",
			}))
		case "browsebysubject":
			w.Write(browseBySubjectBody(t, "Alcohol", map[string]string{
				"addiction_potential": "High",
			}))
		}
	})

	sr := &substanceResolver{s: &substance.Substance{
		Name:                  "MDMA",
		DangerousInteractions: []string{"Alcohol"},
	}, deps: r}

	out, err := sr.DangerousInteractions(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Alcohol", out[0].Name())
	require.NotNil(t, out[0].AddictionPotential())
	assert.Equal(t, "High", *out[0].AddictionPotential())
}
