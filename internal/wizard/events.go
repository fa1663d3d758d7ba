package wizard

import "github.com/recywise/recywise-tui/internal/session"

// Event is anything Transition accepts. The terminal layer produces the user
// events; the two *Decoded/*Ready/*Failed pairs arrive when a gateway call
// finishes.
type Event interface{}

// VehicleField names one input on the manual entry step.
type VehicleField int

const (
	FieldYear VehicleField = iota
	FieldMake
	FieldModel
)

// Start leaves the landing step.
type Start struct{}

// SetVIN mirrors the VIN input into the form as the user types.
type SetVIN struct {
	Value string
}

// SubmitVIN asks for a decode of the current form VIN.
type SubmitVIN struct{}

// VINDecoded delivers a successful decode.
type VINDecoded struct {
	Vehicle session.VehicleRecord
}

// VINDecodeFailed reports a decode that did not produce a vehicle.
type VINDecodeFailed struct {
	Err error
}

// SetVehicleField mirrors one manual entry input into the form.
type SetVehicleField struct {
	Field VehicleField
	Value string
}

// SubmitVehicle submits the manually entered vehicle.
type SubmitVehicle struct{}

// Confirm answers the vehicle confirmation prompt.
type Confirm struct {
	Accept bool
}

// ChooseManualEntry picks hand-entered material percentages.
type ChooseManualEntry struct{}

// ChooseAutoEstimate picks the AI estimate. The feature is not live, so the
// wizard answers with a message instead of moving on.
type ChooseAutoEstimate struct{}

// EditMaterials opens the material percentages for editing.
type EditMaterials struct{}

// SetMaterialPercent commits one material input. The terminal layer coerces
// the raw text first, so blank fields arrive as 0.
type SetMaterialPercent struct {
	Name    string
	Percent float64
}

// SaveMaterials closes editing and returns to the review.
type SaveMaterials struct{}

// GeneratePathway asks the backend for a recycling pathway.
type GeneratePathway struct{}

// PathwayReady delivers a generated pathway.
type PathwayReady struct {
	Pathway session.Pathway
}

// PathwayFailed reports a generation attempt that returned no pathway.
type PathwayFailed struct {
	Err error
}

// Back retraces the last forward move.
type Back struct{}

// Restart ends the walkthrough and begins a fresh one.
type Restart struct{}
