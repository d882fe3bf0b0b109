package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"sutra/models"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(NewClient(srv.URL, "test-key", srv.Client()), nil), srv
}

func TestSearchPassesThroughUpstream(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") != "dune" {
			t.Errorf("unexpected query params: %v", r.URL.Query())
		}
		w.Write([]byte(`{"Response":"True","totalResults":"2","Search":[
			{"imdbID":"tt1160419","Title":"Dune","Year":"2021","Type":"movie","Poster":"p1"},
			{"imdbID":"tt0087182","Title":"Dune","Year":"1984","Type":"movie","Poster":"p2"}]}`))
	})

	result, reason, err := svc.SearchMedia(context.Background(), "dune", "", 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if reason != models.DegradedNone {
		t.Fatalf("live result should not be degraded, got %q", reason)
	}
	if len(result.Search) != 2 || result.TotalResults != "2" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Search[0].MediaType != "movie" {
		t.Errorf("type not normalized: %q", result.Search[0].MediaType)
	}
}

func TestDetailsFallsBackOnUpstreamFalse(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
	})

	media, reason, err := svc.GetDetails(context.Background(), "tt0468569")
	if err != nil {
		t.Fatalf("expected builtin fallback, got error %v", err)
	}
	if media.Title != "The Dark Knight" {
		t.Fatalf("expected builtin record, got %q", media.Title)
	}
	if reason != models.DegradedUpstreamFalse {
		t.Fatalf("expected %q, got %q", models.DegradedUpstreamFalse, reason)
	}
}

func TestDetailsUnknownIDNotInBuiltinDataset(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
	})

	_, reason, err := svc.GetDetails(context.Background(), "tt9999999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if reason != models.DegradedUpstreamFalse {
		t.Fatalf("reason should still explain the upstream failure, got %q", reason)
	}
}

func TestAuthFailureDoesNotRetry(t *testing.T) {
	var hits atomic.Int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	_, reason, err := svc.SearchMedia(context.Background(), "dune", "", 1)
	if err != nil {
		t.Fatalf("expected builtin fallback, got error %v", err)
	}
	if reason != models.DegradedAuthExhausted {
		t.Fatalf("expected auth-exhausted reason, got %q", reason)
	}
	if hits.Load() != 1 {
		t.Fatalf("401 must not be retried, got %d attempts", hits.Load())
	}
}

func TestTransientFailureIsRetried(t *testing.T) {
	var hits atomic.Int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"Response":"True","imdbID":"tt1160419","Title":"Dune","Year":"2021","Type":"movie"}`))
	})

	media, reason, err := svc.GetDetails(context.Background(), "tt1160419")
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if reason != models.DegradedNone {
		t.Fatalf("recovered call should not be degraded, got %q", reason)
	}
	if media.Title != "Dune" {
		t.Fatalf("unexpected title %q", media.Title)
	}
	if hits.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", hits.Load())
	}
}

func TestNetworkFailureFallsBackToBuiltinSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := srv.Client()
	srv.Close() // connections now refused

	svc := New(NewClient(srv.URL, "test-key", client), nil)

	result, reason, err := svc.SearchMedia(context.Background(), "matrix", "", 1)
	if err != nil {
		t.Fatalf("expected builtin fallback, got %v", err)
	}
	if reason != models.DegradedNetworkError {
		t.Fatalf("expected network-error reason, got %q", reason)
	}
	if len(result.Search) != 1 || result.Search[0].IMDBID != "tt0133093" {
		t.Fatalf("builtin search wrong: %+v", result.Search)
	}
}

func TestSeasonNoMatchIsNotFound(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Series or season not found!"}`))
	})

	_, reason, err := svc.GetSeasonEpisodes(context.Background(), "tt0903747", 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing season, got %v", err)
	}
	if reason != models.DegradedNone {
		t.Fatalf("no-match is not degradation, got %q", reason)
	}
}

func TestSeasonParsesEpisodes(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("Season") != "1" {
			t.Errorf("unexpected params: %v", r.URL.Query())
		}
		w.Write([]byte(`{"Response":"True","totalSeasons":"5","Episodes":[
			{"Title":"Pilot","Released":"2008-01-20","Episode":"1","imdbRating":"9.0","imdbID":"tt0959621"}]}`))
	})

	season, _, err := svc.GetSeasonEpisodes(context.Background(), "tt0903747", 1)
	if err != nil {
		t.Fatalf("season fetch failed: %v", err)
	}
	if season.TotalSeasons != "5" || len(season.Episodes) != 1 {
		t.Fatalf("unexpected season: %+v", season)
	}
	if season.Episodes[0].Title != "Pilot" {
		t.Errorf("unexpected episode: %+v", season.Episodes[0])
	}
}

func TestByTitleNoMatchReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	})

	if _, err := svc.GetByTitle(context.Background(), "No Such Film", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type stubTrailers struct {
	results []models.ScrapedResult
	err     error
	calls   int
}

func (s *stubTrailers) Fetch(_ context.Context, _ string) ([]models.ScrapedResult, error) {
	s.calls++
	return s.results, s.err
}

func TestTrailerIDPrefersStaticMap(t *testing.T) {
	scr := &stubTrailers{}
	svc := New(NewClient("http://unused.invalid", "k", nil), scr)

	id, err := svc.TrailerID(context.Background(), "Inception")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "YoHD9XEInc0" {
		t.Fatalf("unexpected id %q", id)
	}
	if scr.calls != 0 {
		t.Fatal("static hit must not trigger a scrape")
	}
}

func TestTrailerIDFallsBackToScrape(t *testing.T) {
	scr := &stubTrailers{results: []models.ScrapedResult{{ID: "yt-abcdefghijk"}}}
	svc := New(NewClient("http://unused.invalid", "k", nil), scr)

	id, err := svc.TrailerID(context.Background(), "Some Obscure Film")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "abcdefghijk" {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestBuiltinSeasonIsDeterministic(t *testing.T) {
	a := builtinSeason("tt0903747", 2)
	b := builtinSeason("tt0903747", 2)
	if len(a.Episodes) != len(b.Episodes) {
		t.Fatal("episode counts differ between calls")
	}
	for i := range a.Episodes {
		if a.Episodes[i] != b.Episodes[i] {
			t.Fatalf("episode %d differs: %+v vs %+v", i, a.Episodes[i], b.Episodes[i])
		}
	}
}
