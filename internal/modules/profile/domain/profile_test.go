package domain_test

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/saransh1220/linkhub/internal/modules/profile/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	for _, ok := range []string{"abc", "Jane_Doe", strings.Repeat("x", 30), "user_42"} {
		assert.NoError(t, domain.ValidateUsername(ok), ok)
	}
	for _, bad := range []string{"", "ab", strings.Repeat("x", 31), "jane.doe", "jane doe", "zoë"} {
		assert.ErrorIs(t, domain.ValidateUsername(bad), domain.ErrValidation, bad)
	}
}

func TestUsernameFromEmail(t *testing.T) {
	name := domain.UsernameFromEmail("jane.doe@x.com", 4821)
	assert.Equal(t, "jane_doe_4821", name)
	assert.Regexp(t, regexp.MustCompile(`^jane_doe_\d+$`), name)

	assert.Equal(t, "user_7", domain.UsernameFromEmail("@x.com", 7))
	assert.Equal(t, "a_1", domain.UsernameFromEmail("a@x.com", 1))

	long := domain.UsernameFromEmail(strings.Repeat("k", 40)+"@x.com", 123456)
	assert.Len(t, long, domain.MaxUsernameLength)
	assert.NoError(t, domain.ValidateUsername(long))
}

func TestProfileNormalize(t *testing.T) {
	p := &domain.Profile{
		Username: "  Jane_Doe ",
		Bio:      "  hi  ",
		Links: domain.Links{
			{ID: "1", Kind: domain.BlockLink, Title: " Blog ", URL: "example.com"},
			{ID: "2", Kind: domain.BlockYouTube, Title: "v", URL: " https://youtu.be/x "},
		},
		Socials: domain.Socials{domain.SocialGitHub: " jane ", domain.SocialTikTok: "  "},
	}

	p.Normalize()

	assert.Equal(t, "Jane_Doe", p.Username)
	assert.Equal(t, "hi", p.Bio)
	assert.Equal(t, "Blog", p.Links[0].Title)
	assert.Equal(t, "https://example.com", p.Links[0].URL)
	assert.Equal(t, "https://youtu.be/x", p.Links[1].URL)
	assert.Equal(t, domain.Socials{domain.SocialGitHub: "jane"}, p.Socials)
}

func TestProfileValidate(t *testing.T) {
	p := &domain.Profile{Username: "jane", Theme: domain.DefaultTheme()}
	require.NoError(t, p.Validate())

	p.Socials = domain.Socials{"myspace": "tom"}
	var ve *domain.ValidationError
	require.ErrorAs(t, p.Validate(), &ve)
	assert.Equal(t, "socials.myspace", ve.Field)

	p.Socials = nil
	p.Theme.LinkStyle = "bold"
	require.ErrorAs(t, p.Validate(), &ve)
	assert.Equal(t, "theme.linkStyle", ve.Field)

	p.Username = "no"
	require.ErrorAs(t, p.Validate(), &ve)
	assert.Equal(t, "username", ve.Field)
}

func TestProfileApplyAndClone(t *testing.T) {
	p := &domain.Profile{ID: "u1", Username: "jane", Links: sampleLinks(), Socials: domain.Socials{domain.SocialGitHub: "jane"}}
	c := p.Clone()
	c.Links[0].ClickCount = 99
	c.Socials[domain.SocialGitHub] = "other"
	assert.Equal(t, 4, p.Links[0].ClickCount)
	assert.Equal(t, "jane", p.Socials[domain.SocialGitHub])

	bio := "new bio"
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.Apply(domain.ProfileFields{Bio: &bio, UpdatedAt: &now})
	assert.Equal(t, "new bio", p.Bio)
	assert.Equal(t, "jane", p.Username)
	assert.Equal(t, now, p.UpdatedAt)

	fields := (&domain.Profile{Username: "x"}).Fields(now)
	require.NotNil(t, fields.Links)
	assert.NotNil(t, *fields.Links)
	assert.NotNil(t, *fields.Socials)
}

func TestProfileJSON_EmptyCollections(t *testing.T) {
	body, err := json.Marshal(domain.Profile{ID: "u1", Username: "jane"})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.JSONEq(t, `[]`, string(raw["links"]))
	assert.JSONEq(t, `{}`, string(raw["socials"]))
}

func TestJSONBRoundTrip(t *testing.T) {
	v, err := sampleLinks().Value()
	require.NoError(t, err)

	var links domain.Links
	require.NoError(t, links.Scan(v))
	assert.Equal(t, sampleLinks(), links)

	var th domain.Theme
	require.NoError(t, th.Scan(`{"backgroundColor":"#000","linkStyle":"outline"}`))
	assert.Equal(t, "#000", th.BackgroundColor)

	var s domain.Socials
	require.NoError(t, s.Scan(nil))
	assert.Error(t, s.Scan(42))
}
