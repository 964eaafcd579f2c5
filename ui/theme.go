// Package ui draws the tank and its panels with raylib for the graphical
// frontend.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishtank/components"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Water          rl.Color
	WaterDeep      rl.Color
	Glass          rl.Color
	Food           rl.Color
	Rare           rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		Water:          rl.Color{R: 30, G: 90, B: 140, A: 255},
		WaterDeep:      rl.Color{R: 10, G: 40, B: 80, A: 255},
		Glass:          rl.Color{R: 180, G: 210, B: 230, A: 255},
		Food:           rl.Color{R: 190, G: 140, B: 80, A: 255},
		Rare:           rl.Gold,
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

var speciesColors = map[components.Species]rl.Color{
	components.SpeciesFish:      rl.Orange,
	components.SpeciesCrab:      rl.Red,
	components.SpeciesJellyfish: rl.Pink,
	components.SpeciesShrimp:    rl.Color{R: 255, G: 150, B: 120, A: 255},
	components.SpeciesMerman:    rl.SkyBlue,
	components.SpeciesMermaid:   rl.Violet,
	components.SpeciesShark:     rl.Gray,
}

// SpeciesColor returns the body color used for a species.
func SpeciesColor(s components.Species) rl.Color {
	if c, ok := speciesColors[s]; ok {
		return c
	}
	return rl.White
}
