// Package wizard sequences the vehicle walkthrough: which step is active,
// which events apply, and what each step shows. Transitions are pure so the
// whole flow can be tested without a terminal or a network.
package wizard

import "fmt"

// Step is a position in the walkthrough. Values are stable and ordered but
// navigation follows the transition rules, never arithmetic on the value.
type Step int

const (
	StepLanding Step = iota + 1
	StepVINEntry
	StepManualEntry
	StepConfirmVehicle
	StepEstimationChoice
	StepMaterialReview
	StepMaterialEntry
	StepGenerating
	StepResults
)

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	return s >= StepLanding && s <= StepResults
}

func (s Step) String() string {
	switch s {
	case StepLanding:
		return "landing"
	case StepVINEntry:
		return "vin_entry"
	case StepManualEntry:
		return "manual_entry"
	case StepConfirmVehicle:
		return "confirm_vehicle"
	case StepEstimationChoice:
		return "estimation_choice"
	case StepMaterialReview:
		return "material_review"
	case StepMaterialEntry:
		return "material_entry"
	case StepGenerating:
		return "generating"
	case StepResults:
		return "results"
	}
	return fmt.Sprintf("step(%d)", int(s))
}
