package geometry

import (
	"errors"
	"testing"

	"rig-cli/internal/model"
)

func TestResolve_Table(t *testing.T) {
	cases := []struct {
		name string
		sel  SizeSelection
		typ  model.ViewType
		want model.FrameSize
	}{
		{"mobile preset", SizeSelection{Name: "iPhone X (375x822)"}, model.ViewTypeMobile, model.FrameSize{Width: 375, Height: 822}},
		{"overlay preset", SizeSelection{Name: "640x480"}, model.ViewTypeVideoOverlay, model.FrameSize{Width: 640, Height: 480}},
		{"panel uses overlay table", SizeSelection{Name: "1280x720"}, model.ViewTypePanel, model.FrameSize{Width: 1280, Height: 720}},
		{"custom verbatim", SizeSelection{Name: Custom, Width: 100, Height: 100}, model.ViewTypeVideoOverlay, model.FrameSize{Width: 100, Height: 100}},
		{"custom ignores tables", SizeSelection{Name: Custom, Width: 1, Height: 2}, model.ViewTypeMobile, model.FrameSize{Width: 1, Height: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.sel, tc.typ)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestResolve_UnknownPreset(t *testing.T) {
	_, err := Resolve(SizeSelection{Name: "800x600"}, model.ViewTypeVideoOverlay)
	if !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	// A mobile preset name is not valid for non-mobile types.
	_, err = Resolve(SizeSelection{Name: "iPhone X (375x822)"}, model.ViewTypePanel)
	if !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset for cross-table lookup, got %v", err)
	}
}

func TestPresetListsAreSorted(t *testing.T) {
	for _, names := range [][]string{MobilePresets(), OverlayPresets()} {
		if len(names) == 0 {
			t.Fatal("empty preset list")
		}
		for i := 1; i < len(names); i++ {
			if names[i-1] >= names[i] {
				t.Fatalf("presets not sorted: %q >= %q", names[i-1], names[i])
			}
		}
	}
}
