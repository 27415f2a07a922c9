package tui

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/zephyrtronium/bigcalc/prefs"
)

// ColorPair is a foreground and background color by name, like "white" or
// "#1b1b1b".
type ColorPair struct {
	FG string `toml:"fg"`
	BG string `toml:"bg"`
}

// Palette colors each part of the calculator.
type Palette struct {
	Display ColorPair `toml:"display"`
	Label   ColorPair `toml:"label"`
	Key     ColorPair `toml:"key"`
	Op      ColorPair `toml:"op"`
	Status  ColorPair `toml:"status"`
	History ColorPair `toml:"history"`
}

// Palettes holds the palette for each theme.
type Palettes struct {
	Dark  Palette `toml:"dark"`
	Light Palette `toml:"light"`
}

// DefaultPalettes returns the built-in palettes.
func DefaultPalettes() Palettes {
	return Palettes{
		Dark: Palette{
			Display: ColorPair{FG: "white", BG: "#15171c"},
			Label:   ColorPair{FG: "gray", BG: "#15171c"},
			Key:     ColorPair{FG: "white", BG: "#2a2e37"},
			Op:      ColorPair{FG: "white", BG: "#3b4a6b"},
			Status:  ColorPair{FG: "black", BG: "yellow"},
			History: ColorPair{FG: "silver", BG: "#15171c"},
		},
		Light: Palette{
			Display: ColorPair{FG: "black", BG: "#f2f2ee"},
			Label:   ColorPair{FG: "gray", BG: "#f2f2ee"},
			Key:     ColorPair{FG: "black", BG: "#dcdcd6"},
			Op:      ColorPair{FG: "white", BG: "#3b4a6b"},
			Status:  ColorPair{FG: "white", BG: "navy"},
			History: ColorPair{FG: "#333333", BG: "#f2f2ee"},
		},
	}
}

// LoadPalettes reads palettes from a TOML file. Colors the file does not set
// keep their defaults.
func LoadPalettes(path string) (Palettes, error) {
	p := DefaultPalettes()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return p, fmt.Errorf("couldn't load palettes: %w", err)
	}
	for theme, pal := range map[string]Palette{prefs.Dark: p.Dark, prefs.Light: p.Light} {
		for _, c := range pal.pairs() {
			if err := checkColor(c.FG); err != nil {
				return p, fmt.Errorf("%s palette: %w", theme, err)
			}
			if err := checkColor(c.BG); err != nil {
				return p, fmt.Errorf("%s palette: %w", theme, err)
			}
		}
	}
	return p, nil
}

// For returns the palette for a theme.
func (p Palettes) For(theme string) Palette {
	if theme == prefs.Light {
		return p.Light
	}
	return p.Dark
}

func (p Palette) pairs() []ColorPair {
	return []ColorPair{p.Display, p.Label, p.Key, p.Op, p.Status, p.History}
}

func checkColor(name string) error {
	if name == "" || name == "default" {
		return nil
	}
	if !tcell.GetColor(name).Valid() {
		return fmt.Errorf("unknown color %q", name)
	}
	return nil
}

func styleFrom(p ColorPair) tcell.Style {
	fg := tcell.GetColor(p.FG)
	bg := tcell.GetColor(p.BG)
	return tcell.StyleDefault.Foreground(fg).Background(bg)
}
