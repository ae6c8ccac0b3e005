package domain

import (
	"slices"

	profile "github.com/saransh1220/linkhub/internal/modules/profile/domain"
)

const (
	DefaultTopLimit = 5
	MaxTopLimit     = 50
)

// Summarize computes click totals. Only link blocks carry clicks; every
// block kind is counted in the type distribution.
func Summarize(p *profile.Profile) Summary {
	s := Summary{
		Links:            []LinkStat{},
		TypeDistribution: map[string]int{},
		CreatedAt:        p.CreatedAt,
	}
	for _, b := range p.Links {
		s.TypeDistribution[string(b.Kind)]++
		if b.Kind != profile.BlockLink {
			continue
		}
		stat := statOf(b)
		s.Links = append(s.Links, stat)
		s.TotalClicks += stat.ClickCount
		if s.MostClickedLink == nil || stat.ClickCount > s.MostClickedLink.ClickCount {
			s.MostClickedLink = &stat
		}
	}
	return s
}

// TopLinks returns up to limit link blocks ordered by clicks, highest first.
// Ties keep display order. A non-positive limit means DefaultTopLimit.
func TopLinks(links profile.Links, limit int) []LinkStat {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	limit = min(limit, MaxTopLimit)

	stats := make([]LinkStat, 0, len(links))
	for _, b := range links {
		if b.Kind == profile.BlockLink {
			stats = append(stats, statOf(b))
		}
	}
	slices.SortStableFunc(stats, func(a, b LinkStat) int {
		return b.ClickCount - a.ClickCount
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

func statOf(b profile.ContentBlock) LinkStat {
	return LinkStat{ID: b.ID, Title: b.Title, URL: b.URL, ClickCount: b.ClickCount}
}
