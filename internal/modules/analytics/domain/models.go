package domain

import (
	"errors"
	"time"
)

var ErrMissingIDs = errors.New("Profile ID and Link ID are required")

// ClickRequest is the anonymous visitor signal sent by the public page.
type ClickRequest struct {
	ProfileID string `json:"profileId"`
	LinkID    string `json:"linkId"`
}

// Outcome labels how a click request ended. It is the metrics label value.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeBadRequest  Outcome = "bad_request"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeError       Outcome = "error"
	OutcomeUnknownLink Outcome = "unknown_link"
)

// ClickEvent is pushed to the profile owner's live feed.
type ClickEvent struct {
	Type       string `json:"type"`
	ProfileID  string `json:"profileId"`
	LinkID     string `json:"linkId"`
	ClickCount int    `json:"clickCount"`
}

type LinkStat struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	ClickCount int    `json:"clickCount"`
}

// Summary is the owner's view of their profile's click totals.
type Summary struct {
	TotalClicks      int            `json:"totalClicks"`
	MostClickedLink  *LinkStat      `json:"mostClickedLink"`
	Links            []LinkStat     `json:"links"`
	TypeDistribution map[string]int `json:"typeDistribution"`
	CreatedAt        time.Time      `json:"createdAt"`
}
