package domain_test

import (
	"testing"

	"github.com/saransh1220/linkhub/internal/modules/profile/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTheme() domain.Theme {
	return domain.Theme{
		BackgroundColor:    "#fff",
		LinkColor:          "#3b82f6",
		LinkFontColor:      "#ffffff",
		FontFamily:         "Inter",
		LinkStyle:          "filled",
		LinkColorHover:     "#2563eb",
		LinkFontColorHover: "#ffffff",
	}
}

func TestThemeValidate(t *testing.T) {
	require.NoError(t, validTheme().Validate())
	require.NoError(t, domain.DefaultTheme().Validate())

	tests := []struct {
		name   string
		mutate func(*domain.Theme)
		field  string
	}{
		{"unknown link style", func(th *domain.Theme) { th.LinkStyle = "bold" }, "theme.linkStyle"},
		{"named color", func(th *domain.Theme) { th.BackgroundColor = "blue" }, "theme.backgroundColor"},
		{"four digit hex", func(th *domain.Theme) { th.LinkColor = "#abcd" }, "theme.linkColor"},
		{"missing hash", func(th *domain.Theme) { th.LinkFontColor = "ffffff" }, "theme.linkFontColor"},
		{"missing hover", func(th *domain.Theme) { th.LinkColorHover = "" }, "theme.linkColorHover"},
		{"blank font", func(th *domain.Theme) { th.FontFamily = "  " }, "theme.fontFamily"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			th := validTheme()
			tc.mutate(&th)
			err := th.Validate()
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestDefaultTheme(t *testing.T) {
	th := domain.DefaultTheme()
	assert.Equal(t, "#ffffff", th.BackgroundColor)
	assert.Equal(t, "#3b82f6", th.LinkColor)
	assert.Equal(t, domain.LinkStyleFilled, th.LinkStyle)
	assert.Equal(t, "Inter", th.FontFamily)
}

func TestThemePresets(t *testing.T) {
	presets := domain.ThemePresets()
	require.Len(t, presets, 12)
	for _, p := range presets {
		assert.NoError(t, p.Theme.Validate(), p.Name)
	}

	presets[0].Name = "changed"
	assert.Equal(t, "Minimalist Light", domain.ThemePresets()[0].Name)

	neon, ok := domain.FindThemePreset("neon")
	require.True(t, ok)
	assert.Equal(t, domain.LinkStyleOutline, neon.Theme.LinkStyle)

	_, ok = domain.FindThemePreset("vaporwave")
	assert.False(t, ok)
}

func TestIsColorDarkAndContrast(t *testing.T) {
	assert.True(t, domain.IsColorDark("#111827"))
	assert.True(t, domain.IsColorDark("#000"))
	assert.False(t, domain.IsColorDark("#ffffff"))
	assert.False(t, domain.IsColorDark("#FFF"))
	assert.False(t, domain.IsColorDark("navy"))

	assert.Equal(t, "#FFFFFF", domain.ContrastColor("#065F46"))
	assert.Equal(t, "#000000", domain.ContrastColor("#FED7AA"))
}
