package domain

import (
	"strconv"
	"strings"
)

type LinkStyle string

const (
	LinkStyleFilled  LinkStyle = "filled"
	LinkStyleOutline LinkStyle = "outline"
)

// Theme is the styling sub-document embedded in every profile.
type Theme struct {
	BackgroundColor    string    `json:"backgroundColor" validate:"required,themecolor"`
	LinkColor          string    `json:"linkColor" validate:"required,themecolor"`
	LinkFontColor      string    `json:"linkFontColor" validate:"required,themecolor"`
	FontFamily         string    `json:"fontFamily" validate:"required,notblank"`
	LinkStyle          LinkStyle `json:"linkStyle" validate:"required,oneof=filled outline"`
	LinkColorHover     string    `json:"linkColorHover" validate:"required,themecolor"`
	LinkFontColorHover string    `json:"linkFontColorHover" validate:"required,themecolor"`
}

// Validate reports the first invalid theme field, if any.
func (t Theme) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fromValidator("theme", err)
	}
	return nil
}

// DefaultTheme is assigned to newly created profiles.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor:    "#ffffff",
		LinkColor:          "#3b82f6",
		LinkFontColor:      "#ffffff",
		FontFamily:         "Inter",
		LinkStyle:          LinkStyleFilled,
		LinkColorHover:     "#2563eb",
		LinkFontColorHover: "#ffffff",
	}
}

type ThemePreset struct {
	Name  string `json:"name"`
	Theme Theme  `json:"theme"`
}

var themePresets = []ThemePreset{
	{"Minimalist Light", Theme{"#F3F4F6", "#1F2937", "#FFFFFF", "Inter", LinkStyleFilled, "#374151", "#FFFFFF"}},
	{"Minimalist Dark", Theme{"#111827", "#F9FAFB", "#111827", "Inter", LinkStyleFilled, "#E5E7EB", "#111827"}},
	{"Forest", Theme{"#065F46", "#ECFDF5", "#065F46", "Lato", LinkStyleFilled, "#D1FAE5", "#065F46"}},
	{"Ocean", Theme{"#0C4A6E", "#E0F2FE", "#0C4A6E", "Roboto", LinkStyleFilled, "#BAE6FD", "#0C4A6E"}},
	{"Sunset", Theme{"#9A3412", "#FED7AA", "#9A3412", "Montserrat", LinkStyleFilled, "#FDBA74", "#9A3412"}},
	{"Neon", Theme{"#1A202C", "#38B2AC", "#1A202C", "Poppins", LinkStyleOutline, "#319795", "#FFFFFF"}},
	{"Galaxy", Theme{"#0F172A", "#8B5CF6", "#FFFFFF", "Poppins", LinkStyleOutline, "#7C3AED", "#FFFFFF"}},
	{"Sakura", Theme{"#831843", "#FECACA", "#831843", "Montserrat", LinkStyleFilled, "#FCA5A5", "#831843"}},
	{"Mint", Theme{"#134E4A", "#CCFBF1", "#134E4A", "Lato", LinkStyleFilled, "#99F6E4", "#134E4A"}},
	{"Citrus", Theme{"#92400E", "#FEF3C7", "#92400E", "Oswald", LinkStyleFilled, "#FDE68A", "#92400E"}},
	{"Coffee", Theme{"#44403C", "#E7E5E4", "#44403C", "Roboto", LinkStyleFilled, "#D6D3D1", "#44403C"}},
	{"Royal", Theme{"#581C87", "#E9D5FF", "#581C87", "Inter", LinkStyleFilled, "#DDD6FE", "#581C87"}},
}

// ThemePresets returns a copy of the named preset catalogue.
func ThemePresets() []ThemePreset {
	out := make([]ThemePreset, len(themePresets))
	copy(out, themePresets)
	return out
}

// FindThemePreset looks a preset up by name, ignoring case.
func FindThemePreset(name string) (ThemePreset, bool) {
	for _, p := range themePresets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return ThemePreset{}, false
}

// IsColorDark uses the YIQ brightness formula. Unparseable colors count as light.
func IsColorDark(hex string) bool {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return false
	}
	return (r*299+g*587+b*114)/1000 < 128
}

// ContrastColor picks white text for dark backgrounds and black otherwise.
func ContrastColor(hex string) string {
	if IsColorDark(hex) {
		return "#FFFFFF"
	}
	return "#000000"
}

func parseHexColor(hex string) (r, g, b int, ok bool) {
	if !hexColorPattern.MatchString(hex) {
		return 0, 0, 0, false
	}
	digits := hex[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
