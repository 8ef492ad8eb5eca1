package photos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countries/internal/providers"
)

func serve(t *testing.T, check func(*http.Request), body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		check(r)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestUnsplash(t *testing.T) {
	base := serve(t, func(r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Iceland", q.Get("query"))
		assert.Equal(t, "k", q.Get("client_id"))
		assert.Equal(t, "5", q.Get("per_page"))
		assert.Equal(t, "landscape", q.Get("orientation"))
	}, `{"total":120,"results":[
		{"alt_description":"glacier","urls":{"regular":"https://u/1","thumb":"https://u/1t"},"user":{"name":"Ann"},"links":{"html":"https://u/p/1"}},
		{"alt_description":null,"urls":{"regular":"https://u/2","thumb":"https://u/2t"},"user":{"name":"Bo"},"links":{"html":"https://u/p/2"}}
	]}`)

	src, err := NewUnsplash(providers.Config{BaseURL: base, APIKey: "k"})
	require.NoError(t, err)
	page, err := src.Search(context.Background(), "iceland")
	require.NoError(t, err)

	assert.Equal(t, 120, page.TotalResults)
	require.Len(t, page.Photos, 2)
	assert.Equal(t, Photo{
		URL: "https://u/1", Thumbnail: "https://u/1t", Description: "glacier",
		Photographer: "Ann", SourceURL: "https://u/p/1", Source: "Unsplash",
	}, page.Photos[0])
	assert.Equal(t, NoDescription, page.Photos[1].Description)
}

func TestPixabay(t *testing.T) {
	base := serve(t, func(r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "k", q.Get("key"))
		assert.Equal(t, "Iceland", q.Get("q"))
		assert.Equal(t, "photo", q.Get("image_type"))
		assert.Equal(t, "true", q.Get("safesearch"))
	}, `{"totalHits":7,"hits":[{"webformatURL":"https://p/1","previewURL":"https://p/1t","tags":"ice, snow","user":"cam","pageURL":"https://p/page/1"}]}`)

	src, err := NewPixabay(providers.Config{BaseURL: base + "/api/", APIKey: "k"})
	require.NoError(t, err)
	page, err := src.Search(context.Background(), "Iceland")
	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalResults)
	assert.Equal(t, "Pixabay", page.Photos[0].Source)
	assert.Equal(t, "ice, snow", page.Photos[0].Description)
}

func TestPexels(t *testing.T) {
	base := serve(t, func(r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("Authorization"))
		assert.Equal(t, "Iceland", r.URL.Query().Get("query"))
	}, `{"total_results":3,"photos":[{"alt":"","photographer":"Dee","url":"https://x/photo/1","src":{"medium":"https://x/1m","tiny":"https://x/1t"}}]}`)

	src, err := NewPexels(providers.Config{BaseURL: base + "/v1/search", APIKey: "k"})
	require.NoError(t, err)
	page, err := src.Search(context.Background(), "Iceland")
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalResults)
	assert.Equal(t, Photo{
		URL: "https://x/1m", Thumbnail: "https://x/1t", Description: NoDescription,
		Photographer: "Dee", SourceURL: "https://x/photo/1", Source: "Pexels",
	}, page.Photos[0])
}

func TestSourcesRequireKeys(t *testing.T) {
	cfg := providers.Config{BaseURL: "https://example.test"}
	_, err := NewUnsplash(cfg)
	assert.Equal(t, providers.ErrorNotConfigured, providers.GetCategory(err))
	_, err = NewPixabay(cfg)
	assert.Equal(t, providers.ErrorNotConfigured, providers.GetCategory(err))
	_, err = NewPexels(cfg)
	assert.Equal(t, providers.ErrorNotConfigured, providers.GetCategory(err))
}
