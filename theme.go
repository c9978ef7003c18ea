package appack

import "github.com/catforgor/appack/internal/themes"

// Theme holds resolved color/typography settings for the renderer.
type Theme = themes.Theme

// ResolveTheme maps a theme name to a validated Theme. Builtin themes
// (default, light, dracula, monokai, solarized) are searched first, then
// TOML files under themesDir, where the name may address nested subfolders
// ("dark/dracula"). An empty name resolves to the default theme.
func ResolveTheme(name, themesDir string) (*Theme, error) {
	return themes.Resolve(name, themesDir)
}

// DefaultTheme returns the builtin default theme.
func DefaultTheme() *Theme {
	return themes.Default()
}
