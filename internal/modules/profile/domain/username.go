package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

var (
	usernamePattern   = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	usernameForbidden = regexp.MustCompile(`[^a-zA-Z0-9_]`)
)

func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return invalid("username", "must be 3-30 characters of letters, digits or underscores")
	}
	return nil
}

// UsernameFromEmail derives "<local part>_<suffix>", replacing characters
// outside [a-zA-Z0-9_] and truncating the base so the result fits 30 characters.
func UsernameFromEmail(email string, suffix int) string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	base := usernameForbidden.ReplaceAllString(local, "_")
	if base == "" {
		base = "user"
	}

	tail := "_" + strconv.Itoa(suffix)
	if len(base)+len(tail) > MaxUsernameLength {
		base = base[:MaxUsernameLength-len(tail)]
	}
	return base + tail
}
