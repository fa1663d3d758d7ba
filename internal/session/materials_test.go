package session

import "testing"

func TestMaterialNamesFixedOrder(t *testing.T) {
	want := []string{"Steel", "Aluminum", "Copper", "Plastics", "Rubber", "Glass"}
	got := MaterialNames()
	if len(got) != len(want) {
		t.Fatalf("expected %d materials, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("materials[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMaterialCompositionZeroValue(t *testing.T) {
	var mc MaterialComposition
	for _, name := range MaterialNames() {
		if pct := mc.Percent(name); pct != 0 {
			t.Errorf("%s = %v, want 0", name, pct)
		}
	}
	if mc.Total() != 0 {
		t.Errorf("Total() = %v, want 0", mc.Total())
	}
}

func TestMaterialCompositionSet(t *testing.T) {
	var mc MaterialComposition
	if !mc.Set("Steel", 60) {
		t.Fatal("Set(Steel) should succeed")
	}
	if mc.Percent("Steel") != 60 {
		t.Errorf("Steel = %v, want 60", mc.Percent("Steel"))
	}
	if mc.Percent("Glass") != 0 {
		t.Errorf("Glass = %v, want 0", mc.Percent("Glass"))
	}
}

func TestMaterialCompositionRejectsUnknownName(t *testing.T) {
	var mc MaterialComposition
	if mc.Set("Unobtainium", 50) {
		t.Error("Set should reject an unknown material")
	}
	if mc.Percent("Unobtainium") != 0 {
		t.Error("unknown material should read as 0")
	}
	if len(mc.Map()) != 6 {
		t.Errorf("key set grew to %d, want 6", len(mc.Map()))
	}
}

func TestMaterialCompositionReplace(t *testing.T) {
	var mc MaterialComposition
	mc.Set("Steel", 60)
	mc.Set("Glass", 5)
	mc.Replace(map[string]float64{
		"Steel":       55,
		"Aluminum":    12,
		"Unobtainium": 99,
	})
	if mc.Percent("Steel") != 55 {
		t.Errorf("Steel = %v, want 55", mc.Percent("Steel"))
	}
	if mc.Percent("Aluminum") != 12 {
		t.Errorf("Aluminum = %v, want 12", mc.Percent("Aluminum"))
	}
	if mc.Percent("Glass") != 5 {
		t.Errorf("Glass = %v, want 5 (absent keys keep their value)", mc.Percent("Glass"))
	}
	if len(mc.Map()) != 6 {
		t.Errorf("key set = %d entries, want 6", len(mc.Map()))
	}
}

func TestMaterialCompositionValueSemantics(t *testing.T) {
	var a MaterialComposition
	a.Set("Copper", 2)
	b := a
	b.Set("Copper", 40)
	if a.Percent("Copper") != 2 {
		t.Errorf("copy mutated the original: Copper = %v, want 2", a.Percent("Copper"))
	}
}

func TestMaterialCompositionTotal(t *testing.T) {
	var mc MaterialComposition
	mc.Replace(map[string]float64{
		"Steel": 60, "Aluminum": 10, "Copper": 5, "Plastics": 15, "Rubber": 5, "Glass": 5,
	})
	if mc.Total() != 100 {
		t.Errorf("Total() = %v, want 100", mc.Total())
	}
}

func TestCoercePercent(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"12.5", 12.5},
		{" 60 ", 60},
		{"0", 0},
		{"abc", 0},
		{"12abc", 0},
	}
	for _, tc := range cases {
		if got := CoercePercent(tc.raw); got != tc.want {
			t.Errorf("CoercePercent(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
