package geometry

import (
	"errors"
	"fmt"
	"sort"

	"rig-cli/internal/model"
)

// Custom is the selection name that bypasses the preset tables and takes the
// caller-supplied width/height verbatim.
const Custom = "Custom"

var ErrUnknownPreset = errors.New("unknown size preset")

// SizeSelection is a named preset or (when Name == Custom) explicit pixels.
type SizeSelection struct {
	Name   string `json:"name"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

var mobileSizes = map[string]model.FrameSize{
	"iPhone 5 (320x568)":   {Width: 320, Height: 568},
	"iPhone X (375x822)":   {Width: 375, Height: 822},
	"Galaxy S9 (360x740)":  {Width: 360, Height: 740},
	"iPad (768x1024)":      {Width: 768, Height: 1024},
	"iPad Pro (1024x1366)": {Width: 1024, Height: 1366},
}

var overlaySizes = map[string]model.FrameSize{
	"640x480":   {Width: 640, Height: 480},
	"768x576":   {Width: 768, Height: 576},
	"1024x576":  {Width: 1024, Height: 576},
	"1280x720":  {Width: 1280, Height: 720},
	"1920x1080": {Width: 1920, Height: 1080},
}

// Resolve maps a size selection plus the view's type to concrete pixels.
// Pure lookup: no validation of Custom magnitudes (that is a UI concern).
func Resolve(sel SizeSelection, typ model.ViewType) (model.FrameSize, error) {
	if sel.Name == Custom {
		return model.FrameSize{Width: sel.Width, Height: sel.Height}, nil
	}
	table := overlaySizes
	if typ == model.ViewTypeMobile {
		table = mobileSizes
	}
	fs, ok := table[sel.Name]
	if !ok {
		return model.FrameSize{}, fmt.Errorf("%w: %q", ErrUnknownPreset, sel.Name)
	}
	return fs, nil
}

// MobilePresets returns the mobile preset names, sorted for stable dialogs.
func MobilePresets() []string { return sortedKeys(mobileSizes) }

// OverlayPresets returns the overlay/panel preset names, sorted.
func OverlayPresets() []string { return sortedKeys(overlaySizes) }

func sortedKeys(m map[string]model.FrameSize) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
