package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"sutra/models"
	metadatapkg "sutra/services/metadata"
)

type fakeMetadata struct {
	search  *models.SearchResult
	details *models.Media
	season  *models.Season
	reason  models.DegradedReason
	err     error
	trailer string
}

func (f *fakeMetadata) SearchMedia(_ context.Context, _, _ string, _ int) (*models.SearchResult, models.DegradedReason, error) {
	return f.search, f.reason, f.err
}

func (f *fakeMetadata) GetDetails(_ context.Context, _ string) (*models.Media, models.DegradedReason, error) {
	return f.details, f.reason, f.err
}

func (f *fakeMetadata) GetByTitle(_ context.Context, _, _ string) (*models.Media, error) {
	return f.details, f.err
}

func (f *fakeMetadata) GetSeasonEpisodes(_ context.Context, _ string, _ int) (*models.Season, models.DegradedReason, error) {
	return f.season, f.reason, f.err
}

func (f *fakeMetadata) TrailerID(_ context.Context, _ string) (string, error) {
	return f.trailer, f.err
}

func TestSearchRequiresQuery(t *testing.T) {
	h := NewMetadataHandler(&fakeMetadata{})

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchRejectsBadType(t *testing.T) {
	h := NewMetadataHandler(&fakeMetadata{})

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=dune&type=anime", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchSetsDegradedHeader(t *testing.T) {
	h := NewMetadataHandler(&fakeMetadata{
		search: &models.SearchResult{Search: []models.Media{{IMDBID: "tt0468569"}}, TotalResults: "1"},
		reason: models.DegradedAuthExhausted,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=dark+knight", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(DegradedHeader); got != string(models.DegradedAuthExhausted) {
		t.Fatalf("expected degraded header, got %q", got)
	}

	var result models.SearchResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(result.Search) != 1 {
		t.Fatalf("unexpected payload: %+v", result)
	}
}

func TestDetailsLiveResponseHasNoDegradedHeader(t *testing.T) {
	h := NewMetadataHandler(&fakeMetadata{details: &models.Media{IMDBID: "tt1160419", Title: "Dune"}})

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/media/tt1160419", nil),
		map[string]string{"imdbID": "tt1160419"})
	rec := httptest.NewRecorder()
	h.Details(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(DegradedHeader) != "" {
		t.Fatal("live response must not carry the degraded header")
	}
}

func TestDetailsNotFound(t *testing.T) {
	h := NewMetadataHandler(&fakeMetadata{err: metadatapkg.ErrNotFound})

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/media/tt0000000", nil),
		map[string]string{"imdbID": "tt0000000"})
	rec := httptest.NewRecorder()
	h.Details(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSeasonValidatesNumber(t *testing.T) {
	h := NewMetadataHandler(&fakeMetadata{})

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/media/tt0903747/season/0", nil),
		map[string]string{"imdbID": "tt0903747", "n": "0"})
	rec := httptest.NewRecorder()
	h.Season(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTrailerFoundAndMissing(t *testing.T) {
	h := NewMetadataHandler(&fakeMetadata{trailer: "YoHD9XEInc0"})

	req := httptest.NewRequest(http.MethodGet, "/api/trailer?title=Inception", nil)
	rec := httptest.NewRecorder()
	h.Trailer(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["videoId"] != "YoHD9XEInc0" {
		t.Fatalf("unexpected body: %v", body)
	}

	h = NewMetadataHandler(&fakeMetadata{})
	rec = httptest.NewRecorder()
	h.Trailer(rec, httptest.NewRequest(http.MethodGet, "/api/trailer?title=Nothing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing trailer, got %d", rec.Code)
	}
}
