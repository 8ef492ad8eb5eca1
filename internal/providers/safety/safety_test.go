package safety

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countries/internal/providers"
)

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
	<title>Travel Advisories</title>
	<item>
		<title>Niger - Level 4: Do Not Travel</title>
		<description>Do not travel to Niger.</description>
		<pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate>
	</item>
	<item>
		<title>Nigeria - Level 3: Reconsider Travel</title>
		<description>Reconsider travel to Nigeria.</description>
		<pubDate>Tue, 02 Jan 2024 00:00:00 GMT</pubDate>
	</item>
	<item>
		<title>France - Level 2: Exercise Increased Caution</title>
		<description>Exercise increased caution in France.</description>
		<pubDate>Wed, 03 Jan 2024 00:00:00 GMT</pubDate>
	</item>
</channel></rss>`

func newTestClient(t *testing.T, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	c, err := New(providers.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestAdvisory(t *testing.T) {
	c := newTestClient(t, feed)
	ctx := context.Background()

	t.Run("matches title prefix case-insensitively", func(t *testing.T) {
		got, err := c.Advisory(ctx, "france")
		require.NoError(t, err)
		assert.Equal(t, "france", got.Country)
		assert.Equal(t, "Exercise increased caution in France.", got.Advisory.Message)
		assert.Equal(t, "Wed, 03 Jan 2024 00:00:00 GMT", got.Advisory.Updated)
		assert.Nil(t, got.Advisory.Score)

		raw, err := json.Marshal(got)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"score":null`)
	})

	t.Run("first prefix match wins", func(t *testing.T) {
		got, err := c.Advisory(ctx, "Niger")
		require.NoError(t, err)
		assert.Equal(t, "Do not travel to Niger.", got.Advisory.Message)
	})

	t.Run("no match is not found", func(t *testing.T) {
		_, err := c.Advisory(ctx, "Atlantis")
		assert.Equal(t, providers.ErrorNotFound, providers.GetCategory(err))
	})
}

func TestAdvisoryMalformedFeed(t *testing.T) {
	c := newTestClient(t, "<rss><channel><item>")
	_, err := c.Advisory(context.Background(), "France")
	assert.Equal(t, providers.ErrorProtocol, providers.GetCategory(err))
}
