package tui

import (
	"strconv"
	"strings"
	"testing"
)

func TestAllPaletteColorsAreValidHex(t *testing.T) {
	colors := AllPaletteColors()
	if len(colors) != 26 {
		t.Fatalf("palette size = %d, want 26", len(colors))
	}
	for _, c := range colors {
		s := string(c)
		if !strings.HasPrefix(s, "#") || len(s) != 7 {
			t.Errorf("color %q is not a #rrggbb value", s)
			continue
		}
		if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
			t.Errorf("color %q has non-hex digits: %v", s, err)
		}
	}
}

func TestSemanticAliasesPointIntoPalette(t *testing.T) {
	cases := []struct {
		name  string
		alias string
		want  string
	}{
		{"brand", string(colorBrand), string(colorGreen)},
		{"accent", string(colorAccent), string(colorTeal)},
		{"focus", string(colorFocus), string(colorLavender)},
		{"success", string(colorSuccess), string(colorGreen)},
		{"error", string(colorError), string(colorRed)},
		{"warning", string(colorWarning), string(colorYellow)},
		{"info", string(colorInfo), string(colorSky)},
	}
	for _, tc := range cases {
		if tc.alias != tc.want {
			t.Errorf("%s = %q, want %q", tc.name, tc.alias, tc.want)
		}
	}
}
