package annotation

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

// Style controls how boxes and labels look.
type Style struct {
	LargeImageWidth  int     // images wider than this get LargeFontSize
	LargeFontSize    float64 // in points at 72 DPI, i.e. pixels
	SmallFontSize    float64
	StrokeWidthRatio float64 // outline width relative to the image width
	AccentColor      color.RGBA
	LabelOffset      image.Point // relative to the top-left corner of the box
}

func DefaultStyle() Style {
	return Style{
		LargeImageWidth:  1500,
		LargeFontSize:    90,
		SmallFontSize:    40,
		StrokeWidthRatio: 0.003,
		AccentColor:      color.RGBA{R: 0xFF, A: 0xFF},
		LabelOffset:      image.Pt(10, 5),
	}
}

func StyleFromConfig(config *common.Config) (Style, error) {
	style := DefaultStyle()
	style.LargeImageWidth = config.GetIntOrDefault(domain.ConfigKeyLargeImageWidth, style.LargeImageWidth)
	style.LargeFontSize = config.GetFloatOrDefault(domain.ConfigKeyLargeFontSize, style.LargeFontSize)
	style.SmallFontSize = config.GetFloatOrDefault(domain.ConfigKeySmallFontSize, style.SmallFontSize)
	style.StrokeWidthRatio = config.GetFloatOrDefault(domain.ConfigKeyStrokeWidthRatio, style.StrokeWidthRatio)
	accentColor := config.GetString(domain.ConfigKeyAccentColor)
	if accentColor != "" {
		c, err := ParseHexColor(accentColor)
		if err != nil {
			return Style{}, err
		}
		style.AccentColor = c
	}
	return style, nil
}

func (s Style) FontSize(imageWidth int) float64 {
	if imageWidth > s.LargeImageWidth {
		return s.LargeFontSize
	}
	return s.SmallFontSize
}

// StrokeWidth is proportional to the image width, but never thinner than a pixel.
func (s Style) StrokeWidth(imageWidth int) int {
	width := int(float64(imageWidth) * s.StrokeWidthRatio)
	if width < 1 {
		return 1
	}
	return width
}

// ParseHexColor parses "#RRGGBB" (the leading '#' is optional).
func ParseHexColor(str string) (color.RGBA, error) {
	hex := strings.TrimPrefix(str, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB", str)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", str, err)
	}
	return color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 0xFF,
	}, nil
}
