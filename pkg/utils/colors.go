package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
)

// fallback palette for well known entity codes, teammates share colors
//
//nolint:gochecknoglobals // lookup table
var fallbackColors = map[string]model.Color{
	"VER": {R: 30, G: 65, B: 255},
	"PER": {R: 30, G: 65, B: 255},
	"HAM": {R: 0, G: 210, B: 190},
	"RUS": {R: 0, G: 210, B: 190},
	"LEC": {R: 220, G: 0, B: 0},
	"SAI": {R: 220, G: 0, B: 0},
	"NOR": {R: 255, G: 135, B: 0},
	"PIA": {R: 255, G: 135, B: 0},
	"ALO": {R: 0, G: 120, B: 80},
	"STR": {R: 0, G: 120, B: 80},
	"GAS": {R: 70, G: 155, B: 255},
	"OCO": {R: 70, G: 155, B: 255},
	"TSU": {R: 43, G: 69, B: 98},
	"RIC": {R: 43, G: 69, B: 98},
	"BOT": {R: 165, G: 0, B: 40},
	"ZHO": {R: 165, G: 0, B: 40},
	"MAG": {R: 182, G: 186, B: 189},
	"HUL": {R: 182, G: 186, B: 189},
	"ALB": {R: 37, G: 82, B: 163},
	"SAR": {R: 37, G: 82, B: 163},
	"DEV": {R: 255, G: 200, B: 0},
	"LAW": {R: 255, G: 200, B: 0},
	"BEA": {R: 255, G: 200, B: 0},
}

var White = model.Color{R: 255, G: 255, B: 255}

// ParseHexColor converts "#RRGGBB" (leading '#' optional) to a Color.
func ParseHexColor(arg string) (model.Color, error) {
	h := strings.TrimPrefix(arg, "#")
	if len(h) != 6 {
		return White, fmt.Errorf("invalid color value: %s", arg)
	}
	val, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return White, fmt.Errorf("invalid color value: %s", arg)
	}
	//nolint:gosec // value range checked by ParseUint
	return model.Color{
		R: uint8(val >> 16 & 0xff),
		G: uint8(val >> 8 & 0xff),
		B: uint8(val & 0xff),
	}, nil
}

// EntityColor resolves the display color for an entity. A provider
// supplied color wins, then the fallback palette, then white.
func EntityColor(code string, provided *model.Color) model.Color {
	if provided != nil {
		return *provided
	}
	if c, ok := fallbackColors[code]; ok {
		return c
	}
	return White
}
