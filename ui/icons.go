// Package ui provides the menu surfaces for Twingate Tray.
// This file contains icon generation utilities for the system tray.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/yllada/twingate-tray/common"
)

// IconState is the tray icon variant.
type IconState int

const (
	// IconOffline means the network client could not be queried.
	IconOffline IconState = iota
	// IconOnline means every resource is usable.
	IconOnline
	// IconAttention means at least one resource needs authentication.
	IconAttention
)

// String returns the name of the state.
func (s IconState) String() string {
	switch s {
	case IconOnline:
		return "online"
	case IconAttention:
		return "attention"
	default:
		return "offline"
	}
}

// Symbol is the glyph drawn on top of the shield.
type Symbol int

const (
	SymbolLock Symbol = iota
	SymbolCheckmark
	SymbolExclamation
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	AccentColor color.RGBA
	SymbolColor color.RGBA
	Symbol      Symbol
}

// IconConfigFor returns the icon configuration of state.
func IconConfigFor(state IconState) IconConfig {
	switch state {
	case IconOnline:
		return IconConfig{
			Size:        common.TrayIconSize,
			FillColor:   color.RGBA{56, 142, 60, 255},   // Dark green
			BorderColor: color.RGBA{76, 175, 80, 255},   // Green
			AccentColor: color.RGBA{200, 230, 201, 255}, // Light green
			SymbolColor: color.RGBA{255, 255, 255, 255},
			Symbol:      SymbolCheckmark,
		}
	case IconAttention:
		return IconConfig{
			Size:        common.TrayIconSize,
			FillColor:   color.RGBA{239, 108, 0, 255},   // Dark amber
			BorderColor: color.RGBA{255, 167, 38, 255},  // Amber
			AccentColor: color.RGBA{255, 224, 178, 255}, // Light amber
			SymbolColor: color.RGBA{255, 255, 255, 255},
			Symbol:      SymbolExclamation,
		}
	default:
		return IconConfig{
			Size:        common.TrayIconSize,
			FillColor:   color.RGBA{117, 117, 117, 255}, // Dark gray
			BorderColor: color.RGBA{158, 158, 158, 255}, // Gray
			AccentColor: color.RGBA{189, 189, 189, 255}, // Light gray
			SymbolColor: color.RGBA{255, 255, 255, 255},
			Symbol:      SymbolLock,
		}
	}
}

// IconGenerator generates PNG icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	img := g.Image()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		common.LogWarn("Icon encoding failed: %v", err)
		return nil
	}
	return buf.Bytes()
}

// Image draws the icon.
func (g *IconGenerator) Image() *image.RGBA {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawShield(img)
	switch g.config.Symbol {
	case SymbolCheckmark:
		g.drawCheckmark(img)
	case SymbolExclamation:
		g.drawExclamation(img)
	default:
		g.drawLock(img)
	}
	return img
}

// drawShield draws the shield shape on the image.
func (g *IconGenerator) drawShield(img *image.RGBA) {
	size := g.config.Size
	centerX := float64(size) / 2
	topY := 1.0
	bottomY := float64(size) - 2
	shieldWidth := float64(size) - 4

	inShield := func(x, y float64) bool {
		relY := (y - topY) / (bottomY - topY)
		if relY < 0 || relY > 1 {
			return false
		}

		var halfWidth float64
		if relY < 0.5 {
			halfWidth = shieldWidth/2 - relY*0.5
		} else {
			progress := (relY - 0.5) * 2
			halfWidth = (shieldWidth/2 - 0.25) * (1 - progress*progress)
		}
		return x >= centerX-halfWidth && x <= centerX+halfWidth
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if !inShield(fx, fy) {
				continue
			}

			edge := !inShield(fx-1, fy) || !inShield(fx+1, fy) ||
				!inShield(fx, fy-1) || !inShield(fx, fy+1)
			switch {
			case edge:
				img.Set(x, y, g.config.BorderColor)
			case float64(y)/float64(size) < 0.3:
				img.Set(x, y, g.config.AccentColor)
			default:
				img.Set(x, y, g.config.FillColor)
			}
		}
	}
}

// setClipped sets a pixel when it lies within the icon.
func (g *IconGenerator) setClipped(img *image.RGBA, x, y int) {
	if x >= 0 && x < g.config.Size && y >= 0 && y < g.config.Size {
		img.Set(x, y, g.config.SymbolColor)
	}
}

func (g *IconGenerator) drawCheckmark(img *image.RGBA) {
	points := []struct{ x, y int }{
		{6, 11}, {7, 11}, {7, 12}, {8, 12}, {8, 13}, {9, 13},
		{9, 12}, {10, 12}, {10, 11}, {11, 11}, {11, 10}, {12, 10},
		{12, 9}, {13, 9}, {13, 8}, {14, 8},
	}
	for _, p := range points {
		g.setClipped(img, p.x, p.y)
	}
}

func (g *IconGenerator) drawExclamation(img *image.RGBA) {
	center := g.config.Size / 2
	for y := 5; y <= 12; y++ {
		g.setClipped(img, center-1, y)
		g.setClipped(img, center, y)
	}
	for y := 14; y <= 15; y++ {
		g.setClipped(img, center-1, y)
		g.setClipped(img, center, y)
	}
}

func (g *IconGenerator) drawLock(img *image.RGBA) {
	// Body
	for y := 10; y <= 15; y++ {
		for x := 8; x <= 14; x++ {
			if y == 10 || y == 15 || x == 8 || x == 14 {
				g.setClipped(img, x, y)
			}
		}
	}
	// Shackle
	for y := 6; y <= 8; y++ {
		g.setClipped(img, 9, y)
		g.setClipped(img, 13, y)
	}
	for x := 9; x <= 13; x++ {
		g.setClipped(img, x, 6)
	}
}

// Pre-generated icons for performance.
var icons = map[IconState][]byte{
	IconOffline:   NewIconGenerator(IconConfigFor(IconOffline)).Generate(),
	IconOnline:    NewIconGenerator(IconConfigFor(IconOnline)).Generate(),
	IconAttention: NewIconGenerator(IconConfigFor(IconAttention)).Generate(),
}

// Icon returns the PNG bytes of state.
func Icon(state IconState) []byte {
	return icons[state]
}
