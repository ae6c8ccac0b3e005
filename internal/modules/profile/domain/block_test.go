package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/saransh1220/linkhub/internal/modules/profile/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLinks() domain.Links {
	return domain.Links{
		{ID: "l1", Kind: domain.BlockLink, Title: "Blog", URL: "https://example.com", ClickCount: 4},
		{ID: "h1", Kind: domain.BlockHeader, Title: "Music"},
		{ID: "l2", Kind: domain.BlockLink, Title: "Shop", URL: "https://shop.example.com", ClickCount: 1},
	}
}

func TestValidateBlock(t *testing.T) {
	tests := []struct {
		name    string
		block   domain.ContentBlock
		field   string
		wantErr bool
	}{
		{"link with url", domain.ContentBlock{Kind: domain.BlockLink, Title: "Site", URL: "https://example.com"}, "", false},
		{"link without url", domain.ContentBlock{Kind: domain.BlockLink, Title: "Site"}, "url", true},
		{"link with garbage url", domain.ContentBlock{Kind: domain.BlockLink, Title: "Site", URL: "not a url"}, "url", true},
		{"header ignores url", domain.ContentBlock{Kind: domain.BlockHeader, Title: "Section"}, "", false},
		{"blank title", domain.ContentBlock{Kind: domain.BlockHeader, Title: "   "}, "title", true},
		{"long title", domain.ContentBlock{Kind: domain.BlockHeader, Title: strings.Repeat("a", 101)}, "title", true},
		{"title at limit", domain.ContentBlock{Kind: domain.BlockHeader, Title: strings.Repeat("é", 100)}, "", false},
		{"unknown kind", domain.ContentBlock{Kind: "video", Title: "x", URL: "https://example.com"}, "type", true},
		{"youtube short link", domain.ContentBlock{Kind: domain.BlockYouTube, Title: "v", URL: "https://youtu.be/abc123"}, "", false},
		{"youtube watch link", domain.ContentBlock{Kind: domain.BlockYouTube, Title: "v", URL: "https://www.youtube.com/watch?v=abc123&t=4"}, "", false},
		{"vimeo rejected", domain.ContentBlock{Kind: domain.BlockYouTube, Title: "v", URL: "https://vimeo.com/123"}, "url", true},
		{"spotify track", domain.ContentBlock{Kind: domain.BlockSpotify, Title: "s", URL: "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"}, "", false},
		{"youtube path on another host", domain.ContentBlock{Kind: domain.BlockYouTube, Title: "v", URL: "https://vimeo.com/youtu.be/abc123"}, "url", true},
		{"youtube shape in query", domain.ContentBlock{Kind: domain.BlockYouTube, Title: "v", URL: "https://evil.example/?r=youtube.com/watch?v=abc"}, "url", true},
		{"youtube embed link", domain.ContentBlock{Kind: domain.BlockYouTube, Title: "v", URL: "https://www.youtube.com/embed/abc123"}, "", false},
		{"spotify shape in query", domain.ContentBlock{Kind: domain.BlockSpotify, Title: "s", URL: "https://evil.example/?r=https://open.spotify.com/track/abc"}, "url", true},
		{"spotify podcast rejected", domain.ContentBlock{Kind: domain.BlockSpotify, Title: "s", URL: "https://open.spotify.com/show/abc"}, "url", true},
		{"negative clicks", domain.ContentBlock{Kind: domain.BlockLink, Title: "x", URL: "https://example.com", ClickCount: -1}, "clickCount", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.ValidateBlock(tc.block)
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestLinksValidate_DuplicateAndMissingIDs(t *testing.T) {
	links := sampleLinks()
	require.NoError(t, links.Validate())

	links[2].ID = "l1"
	err := links.Validate()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "links[2].id", ve.Field)

	links = sampleLinks()
	links[1].ID = ""
	require.ErrorAs(t, links.Validate(), &ve)
	assert.Equal(t, "links[1].id", ve.Field)

	links = sampleLinks()
	links[0].URL = ""
	require.ErrorAs(t, links.Validate(), &ve)
	assert.Equal(t, "links[0].url", ve.Field)
}

func TestIncrementClick(t *testing.T) {
	links := sampleLinks()

	out := domain.IncrementClick(domain.IncrementClick(links, "l1"), "l1")
	assert.Equal(t, 6, out[0].ClickCount)
	assert.Equal(t, links[1], out[1])
	assert.Equal(t, links[2], out[2])
	assert.Equal(t, 4, links[0].ClickCount, "input must not be mutated")

	assert.Equal(t, links, domain.IncrementClick(links, "x"))
}

func TestResetClicks(t *testing.T) {
	links := sampleLinks()

	one := domain.ResetClicks(links, "l1")
	assert.Equal(t, 0, one[0].ClickCount)
	assert.Equal(t, 1, one[2].ClickCount)

	all := domain.ResetClicks(links, "")
	require.Len(t, all, len(links))
	for i, b := range all {
		assert.Equal(t, 0, b.ClickCount)
		assert.Equal(t, links[i].ID, b.ID)
	}
	assert.Equal(t, 4, links[0].ClickCount)
}

func TestReorder(t *testing.T) {
	links := sampleLinks()

	out := domain.Reorder(links, 0, 2)
	assert.Equal(t, []string{"h1", "l2", "l1"}, ids(out))

	out = domain.Reorder(links, 2, 0)
	assert.Equal(t, []string{"l2", "l1", "h1"}, ids(out))

	assert.Equal(t, ids(links), ids(domain.Reorder(links, -1, 1)))
	assert.Equal(t, ids(links), ids(domain.Reorder(links, 0, 3)))
	assert.Equal(t, []string{"l1", "h1", "l2"}, ids(links))
}

func TestPrependAndRemoveBlock(t *testing.T) {
	links := sampleLinks()

	out := domain.PrependBlock(links, domain.ContentBlock{ID: "n", Kind: domain.BlockHeader, Title: "New", ClickCount: 9})
	assert.Equal(t, []string{"n", "l1", "h1", "l2"}, ids(out))
	assert.Zero(t, out[0].ClickCount)

	out = domain.RemoveBlock(out, "h1")
	assert.Equal(t, []string{"n", "l1", "l2"}, ids(out))
	assert.Len(t, links, 3)
}

func TestEmbedURLs(t *testing.T) {
	cases := map[string]string{
		"https://youtu.be/abc123":                    "https://www.youtube.com/embed/abc123",
		"youtube.com/watch?v=dQw4w9WgXcQ":            "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/xyz?start=10": "https://www.youtube.com/embed/xyz",
		"https://youtu.be/abc123?si=share":           "https://www.youtube.com/embed/abc123",
	}
	for in, want := range cases {
		got, ok := domain.YouTubeEmbedURL(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{
		"https://vimeo.com/123",
		"https://vimeo.com/youtu.be/abc123",
		"https://evil.example/?r=youtube.com/watch?v=abc",
		"https://youtube.com.evil.example/watch?v=abc",
	} {
		_, ok := domain.YouTubeEmbedURL(in)
		assert.False(t, ok, in)
	}

	got, ok := domain.SpotifyEmbedURL("https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=1")
	require.True(t, ok)
	assert.Equal(t, "https://open.spotify.com/embed/playlist/37i9dQZF1DXcBWIGoYBM5M", got)

	_, ok = domain.SpotifyEmbedURL("https://spotify.com/track/abc")
	assert.False(t, ok)
	_, ok = domain.SpotifyEmbedURL("https://evil.example/?r=https://open.spotify.com/track/abc")
	assert.False(t, ok)

	block := domain.ContentBlock{Kind: domain.BlockYouTube, URL: "https://youtu.be/abc123"}
	assert.Equal(t, "https://www.youtube.com/embed/abc123", block.EmbedURL())
	assert.Empty(t, domain.ContentBlock{Kind: domain.BlockLink, URL: "https://youtu.be/abc123"}.EmbedURL())
}

func ids(links domain.Links) []string {
	out := make([]string, len(links))
	for i, b := range links {
		out[i] = b.ID
	}
	return out
}
