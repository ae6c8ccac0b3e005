package domain

import (
	"encoding/json"
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

type BlockKind string

const (
	BlockLink    BlockKind = "link"
	BlockHeader  BlockKind = "header"
	BlockYouTube BlockKind = "youtube"
	BlockSpotify BlockKind = "spotify"
)

func (k BlockKind) Valid() bool {
	switch k {
	case BlockLink, BlockHeader, BlockYouTube, BlockSpotify:
		return true
	}
	return false
}

// NeedsURL reports whether blocks of this kind must carry a URL.
func (k BlockKind) NeedsURL() bool {
	return k == BlockLink || k == BlockYouTube || k == BlockSpotify
}

const maxTitleLength = 100

// ContentBlock is one entry of a profile's ordered link list.
type ContentBlock struct {
	ID         string    `json:"id"`
	Kind       BlockKind `json:"type"`
	Title      string    `json:"title"`
	URL        string    `json:"url,omitempty"`
	ClickCount int       `json:"clickCount"`
}

// EmbedURL returns the player URL for youtube and spotify blocks, or "".
func (b ContentBlock) EmbedURL() string {
	var u string
	switch b.Kind {
	case BlockYouTube:
		u, _ = YouTubeEmbedURL(b.URL)
	case BlockSpotify:
		u, _ = SpotifyEmbedURL(b.URL)
	}
	return u
}

// ValidateBlock checks a single block before it is persisted.
func ValidateBlock(b ContentBlock) error {
	if !b.Kind.Valid() {
		return invalid("type", "must be one of: link header youtube spotify")
	}

	title := strings.TrimSpace(b.Title)
	if title == "" {
		return invalid("title", "is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return invalid("title", "must be at most 100 characters")
	}
	if b.ClickCount < 0 {
		return invalid("clickCount", "must not be negative")
	}

	if !b.Kind.NeedsURL() {
		return nil
	}

	u := strings.TrimSpace(b.URL)
	if u == "" {
		return invalid("url", "is required")
	}
	if err := validate.Var(u, "url"); err != nil {
		return invalid("url", "must be a valid URL")
	}

	switch b.Kind {
	case BlockYouTube:
		if _, ok := YouTubeEmbedURL(u); !ok {
			return invalid("url", "must be a youtube.com/watch?v=, youtu.be/ or youtube.com/embed/ link")
		}
	case BlockSpotify:
		if _, ok := SpotifyEmbedURL(u); !ok {
			return invalid("url", "must be an open.spotify.com track, playlist, album or artist link")
		}
	}
	return nil
}

// Links is the ordered block list. Order is display order.
type Links []ContentBlock

func (l Links) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ContentBlock(l))
}

// Find returns the block with the given id.
func (l Links) Find(id string) (ContentBlock, bool) {
	for _, b := range l {
		if b.ID == id {
			return b, true
		}
	}
	return ContentBlock{}, false
}

// Validate checks every block and that ids are unique within the list.
func (l Links) Validate() error {
	seen := make(map[string]struct{}, len(l))
	for i, b := range l {
		if err := ValidateBlock(b); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return &ValidationError{Field: "links[" + strconv.Itoa(i) + "]." + ve.Field, Reason: ve.Reason}
			}
			return err
		}
		if b.ID == "" {
			return invalid("links["+strconv.Itoa(i)+"].id", "is required")
		}
		if _, dup := seen[b.ID]; dup {
			return invalid("links["+strconv.Itoa(i)+"].id", "duplicates another block id")
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// IncrementClick returns a copy of links with the matching block's count
// raised by one. Unknown ids leave the copy unchanged.
func IncrementClick(links Links, linkID string) Links {
	out := slices.Clone(links)
	for i := range out {
		if out[i].ID == linkID {
			out[i].ClickCount++
			break
		}
	}
	return out
}

// ResetClicks zeroes the count of the block with linkID, or of every block
// when linkID is empty.
func ResetClicks(links Links, linkID string) Links {
	out := slices.Clone(links)
	for i := range out {
		if linkID == "" || out[i].ID == linkID {
			out[i].ClickCount = 0
		}
	}
	return out
}

// Reorder moves the block at from to position to. Out of range indices
// return an unchanged copy.
func Reorder(links Links, from, to int) Links {
	out := slices.Clone(links)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, moved)
}

// PrependBlock adds b at the top of the list with a zero click count.
func PrependBlock(links Links, b ContentBlock) Links {
	b.ClickCount = 0
	out := make(Links, 0, len(links)+1)
	out = append(out, b)
	return append(out, links...)
}

// RemoveBlock drops the block with the given id.
func RemoveBlock(links Links, id string) Links {
	return slices.DeleteFunc(slices.Clone(links), func(b ContentBlock) bool { return b.ID == id })
}

var (
	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([^&#/]+)`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtu\.be/([^?#/]+)`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/([^?#/]+)`),
	}
	spotifyPattern = regexp.MustCompile(`^https?://open\.spotify\.com/(track|playlist|album|artist)/([a-zA-Z0-9]+)`)
)

// YouTubeEmbedURL tries the watch, short and embed URL shapes in that order.
// The host must open the URL.
func YouTubeEmbedURL(raw string) (string, bool) {
	for _, p := range youtubePatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return "https://www.youtube.com/embed/" + m[1], true
		}
	}
	return "", false
}

func SpotifyEmbedURL(raw string) (string, bool) {
	m := spotifyPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return "https://open.spotify.com/embed/" + m[1] + "/" + m[2], true
}
