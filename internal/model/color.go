package model

// PlayerColor identifies a player's ink color.
// Colors are compared by identity, never by RGB distance.
type PlayerColor string

const (
	ColorRed    PlayerColor = "red"
	ColorBlue   PlayerColor = "blue"
	ColorGreen  PlayerColor = "green"
	ColorYellow PlayerColor = "yellow"
	ColorPurple PlayerColor = "purple"
	ColorOrange PlayerColor = "orange"
)

// AllColors returns the closed set of player colors
func AllColors() []PlayerColor {
	return []PlayerColor{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorOrange}
}

// IsValid reports whether the color is a member of the closed set
func (c PlayerColor) IsValid() bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorOrange:
		return true
	}
	return false
}

// DisplayName returns the human-readable name for the color
func (c PlayerColor) DisplayName() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorBlue:
		return "Blue"
	case ColorGreen:
		return "Green"
	case ColorYellow:
		return "Yellow"
	case ColorPurple:
		return "Purple"
	case ColorOrange:
		return "Orange"
	}
	return "Unknown"
}

// RGB returns the color's fixed RGB triple, each component in [0, 1]
func (c PlayerColor) RGB() (r, g, b float64) {
	switch c {
	case ColorRed:
		return 1.0, 0.2, 0.2
	case ColorBlue:
		return 0.2, 0.4, 1.0
	case ColorGreen:
		return 0.2, 0.8, 0.3
	case ColorYellow:
		return 1.0, 0.9, 0.1
	case ColorPurple:
		return 0.6, 0.2, 0.9
	case ColorOrange:
		return 1.0, 0.6, 0.1
	}
	return 0, 0, 0
}
