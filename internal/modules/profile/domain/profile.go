package domain

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"
)

// Identity is what the identity provider hands over after login.
type Identity struct {
	ID    string
	Email string
}

type SocialPlatform string

const (
	SocialInstagram SocialPlatform = "instagram"
	SocialTwitter   SocialPlatform = "twitter"
	SocialTikTok    SocialPlatform = "tiktok"
	SocialLinkedIn  SocialPlatform = "linkedin"
	SocialGitHub    SocialPlatform = "github"
	SocialYouTube   SocialPlatform = "youtube"
)

func (p SocialPlatform) Valid() bool {
	switch p {
	case SocialInstagram, SocialTwitter, SocialTikTok, SocialLinkedIn, SocialGitHub, SocialYouTube:
		return true
	}
	return false
}

// Socials maps a platform to the owner's handle on it.
type Socials map[SocialPlatform]string

func (s Socials) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[SocialPlatform]string(s))
}

func (s Socials) Validate() error {
	for platform := range s {
		if !platform.Valid() {
			return invalid("socials."+string(platform), "is not a supported platform")
		}
	}
	return nil
}

// Profile is the single document owned by an identity.
type Profile struct {
	ID                string    `json:"id" db:"id"`
	Username          string    `json:"username" db:"username"`
	Bio               string    `json:"bio" db:"bio"`
	ProfilePictureURL string    `json:"profile_picture_url" db:"profile_picture_url"`
	Links             Links     `json:"links" db:"links"`
	Theme             Theme     `json:"theme" db:"theme"`
	Socials           Socials   `json:"socials" db:"socials"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileFields is a partial update. Nil fields are left untouched.
type ProfileFields struct {
	Username          *string
	Bio               *string
	ProfilePictureURL *string
	Links             *Links
	Theme             *Theme
	Socials           *Socials
	UpdatedAt         *time.Time
}

// Apply merges the non-nil fields into p.
func (p *Profile) Apply(f ProfileFields) {
	if f.Username != nil {
		p.Username = *f.Username
	}
	if f.Bio != nil {
		p.Bio = *f.Bio
	}
	if f.ProfilePictureURL != nil {
		p.ProfilePictureURL = *f.ProfilePictureURL
	}
	if f.Links != nil {
		p.Links = slices.Clone(*f.Links)
	}
	if f.Theme != nil {
		p.Theme = *f.Theme
	}
	if f.Socials != nil {
		p.Socials = maps.Clone(*f.Socials)
	}
	if f.UpdatedAt != nil {
		p.UpdatedAt = *f.UpdatedAt
	}
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Links = slices.Clone(p.Links)
	c.Socials = maps.Clone(p.Socials)
	return &c
}

// Normalize trims free text, drops empty social handles and gives scheme-less
// link URLs an https:// prefix. Username case is preserved.
func (p *Profile) Normalize() {
	p.Username = strings.TrimSpace(p.Username)
	p.Bio = strings.TrimSpace(p.Bio)
	p.ProfilePictureURL = strings.TrimSpace(p.ProfilePictureURL)

	for i := range p.Links {
		b := &p.Links[i]
		b.Title = strings.TrimSpace(b.Title)
		b.URL = strings.TrimSpace(b.URL)
		if b.Kind == BlockLink && b.URL != "" && !strings.Contains(b.URL, "://") {
			b.URL = "https://" + b.URL
		}
	}

	for platform, handle := range p.Socials {
		handle = strings.TrimSpace(handle)
		if handle == "" {
			delete(p.Socials, platform)
			continue
		}
		p.Socials[platform] = handle
	}
}

// Validate enforces the username format, the theme invariant and every block rule.
func (p *Profile) Validate() error {
	if err := ValidateUsername(p.Username); err != nil {
		return err
	}
	if err := p.Theme.Validate(); err != nil {
		return err
	}
	if err := p.Links.Validate(); err != nil {
		return err
	}
	return p.Socials.Validate()
}

// Fields returns the full set of owner-editable fields for a replacing write.
func (p *Profile) Fields(updatedAt time.Time) ProfileFields {
	links := slices.Clone(p.Links)
	if links == nil {
		links = Links{}
	}
	socials := maps.Clone(p.Socials)
	if socials == nil {
		socials = Socials{}
	}
	return ProfileFields{
		Username:          &p.Username,
		Bio:               &p.Bio,
		ProfilePictureURL: &p.ProfilePictureURL,
		Links:             &links,
		Theme:             &p.Theme,
		Socials:           &socials,
		UpdatedAt:         &updatedAt,
	}
}
