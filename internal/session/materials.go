package session

import (
	"strconv"
	"strings"
)

var materialNames = [...]string{"Steel", "Aluminum", "Copper", "Plastics", "Rubber", "Glass"}

// MaterialNames returns the estimation materials in display order. The set is
// fixed; compositions never gain or lose keys.
func MaterialNames() []string {
	names := make([]string, len(materialNames))
	copy(names, materialNames[:])
	return names
}

// MaterialComposition maps each of the fixed materials to a percentage of the
// vehicle's mass. The zero value has every material at 0%. It is a plain
// value type so session states can be copied freely.
type MaterialComposition struct {
	percents [len(materialNames)]float64
}

func materialIndex(name string) int {
	for i, n := range materialNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Percent returns the stored percentage for name, or 0 for unknown names.
func (mc MaterialComposition) Percent(name string) float64 {
	if i := materialIndex(name); i >= 0 {
		return mc.percents[i]
	}
	return 0
}

// Set stores a percentage for name. Unknown names are rejected so the key set
// stays fixed.
func (mc *MaterialComposition) Set(name string, pct float64) bool {
	i := materialIndex(name)
	if i < 0 {
		return false
	}
	mc.percents[i] = pct
	return true
}

// Replace updates the composition from values. Only known materials are
// applied; materials absent from values keep their current percentage.
func (mc *MaterialComposition) Replace(values map[string]float64) {
	for name, pct := range values {
		mc.Set(name, pct)
	}
}

// Total sums all percentages. The wizard treats 100 as a hint, never a rule.
func (mc MaterialComposition) Total() float64 {
	var total float64
	for _, pct := range mc.percents {
		total += pct
	}
	return total
}

// Map returns the composition keyed by material name, in the shape the
// pathway endpoint expects.
func (mc MaterialComposition) Map() map[string]float64 {
	out := make(map[string]float64, len(materialNames))
	for i, name := range materialNames {
		out[name] = mc.percents[i]
	}
	return out
}

// CoercePercent turns raw text from a percentage input into a number. Blank
// or unparsable text (a field mid-edit, say) commits as 0 rather than being
// rejected.
func CoercePercent(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return pct
}
