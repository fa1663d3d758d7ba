package wizard

import (
	"github.com/google/uuid"

	"github.com/recywise/recywise-tui/internal/session"
)

// ---------------------------------------------------------------------------
// Session state
// ---------------------------------------------------------------------------

const minVINLength = 5

const (
	msgFillAllFields   = "Please fill in all fields."
	msgPathwayFailed   = "Failed to generate pathway."
	msgAutoUnavailable = "AI auto-estimate is not available yet."
)

// State carries everything one walkthrough knows. It is passed and returned
// by value through Transition; nothing in this package holds state between
// calls, so several sessions can run side by side.
type State struct {
	ID        string
	Step      Step
	Form      session.FormData
	LastError string
	Busy      bool

	history []Step
}

// NewState begins a walkthrough at the landing step with a fresh session id.
func NewState() State {
	return State{ID: uuid.NewString(), Step: StepLanding}
}

// CanGoBack reports whether a Back event would move anywhere. The landing
// step has no history and the generating step refuses input.
func (s State) CanGoBack() bool {
	return len(s.history) > 0 && s.Step != StepGenerating
}

// Effect is work the caller must start after a transition. Transition never
// performs the work itself.
type Effect int

const (
	EffectNone Effect = iota
	EffectDecodeVIN
	EffectGeneratePathway
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectDecodeVIN:
		return "decode_vin"
	case EffectGeneratePathway:
		return "generate_pathway"
	}
	return "unknown"
}

// ---------------------------------------------------------------------------
// Navigation history
// ---------------------------------------------------------------------------

// pushStep copies before appending so states that diverged from a common
// ancestor never share backing storage.
func pushStep(h []Step, step Step) []Step {
	out := make([]Step, len(h), len(h)+1)
	copy(out, h)
	return append(out, step)
}

// forward moves to a new step, recording the departed one for Back.
func (s State) forward(to Step) State {
	s.history = pushStep(s.history, s.Step)
	s.Step = to
	return s
}

// returnOrForward moves to a step that may be the one we just came from. A
// round trip (review -> edit -> save) pops instead of pushing, so repeated
// edit cycles do not grow the history.
func (s State) returnOrForward(to Step) State {
	if n := len(s.history); n > 0 && s.history[n-1] == to {
		s.history = append([]Step(nil), s.history[:n-1]...)
		s.Step = to
		return s
	}
	return s.forward(to)
}

// rewindTo unwinds the history to an earlier visit of target, discarding the
// steps in between. Used when rejecting the decoded vehicle: Back afterwards
// must not resurface the stale confirmation.
func (s State) rewindTo(target Step) State {
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i] == target {
			s.history = append([]Step(nil), s.history[:i]...)
			s.Step = target
			return s
		}
	}
	return s.forward(target)
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

// Transition applies ev to prev and returns the next state plus any effect
// the caller must run. Events that do not apply to the current step return
// prev untouched. No I/O happens here; the decode and generate effects are
// carried out by the caller, whose completion events come back through here.
func Transition(prev State, ev Event) (State, Effect) {
	s := prev
	switch ev := ev.(type) {
	case Start:
		if s.Step == StepLanding {
			s.LastError = ""
			return s.forward(StepVINEntry), EffectNone
		}

	case SetVIN:
		if s.Step == StepVINEntry {
			s.LastError = ""
			s.Form.VIN = ev.Value
			return s, EffectNone
		}

	case SubmitVIN:
		if s.Step == StepVINEntry && !s.Busy && len(s.Form.VIN) >= minVINLength {
			s.LastError = ""
			s.Busy = true
			return s, EffectDecodeVIN
		}

	case VINDecoded:
		if s.Step == StepVINEntry && s.Busy {
			s.Busy = false
			s.LastError = ""
			s.Form.Vehicle = ev.Vehicle
			return s.forward(StepConfirmVehicle), EffectNone
		}
		// The user navigated away mid-decode. The call is spent either way.
		s.Busy = false
		return s, EffectNone

	case VINDecodeFailed:
		if s.Step == StepVINEntry && s.Busy {
			// Silent reroute to manual entry. The fallback screen carries its
			// own static explanation, so no error message is surfaced.
			s.Busy = false
			s.LastError = ""
			return s.forward(StepManualEntry), EffectNone
		}
		s.Busy = false
		return s, EffectNone

	case SetVehicleField:
		if s.Step == StepManualEntry {
			s.LastError = ""
			switch ev.Field {
			case FieldYear:
				s.Form.Vehicle.Year = ev.Value
			case FieldMake:
				s.Form.Vehicle.Make = ev.Value
			case FieldModel:
				s.Form.Vehicle.Model = ev.Value
			}
			return s, EffectNone
		}

	case SubmitVehicle:
		if s.Step == StepManualEntry {
			if !s.Form.Vehicle.Complete() {
				s.LastError = msgFillAllFields
				return s, EffectNone
			}
			s.LastError = ""
			return s.forward(StepConfirmVehicle), EffectNone
		}

	case Confirm:
		if s.Step == StepConfirmVehicle {
			s.LastError = ""
			if ev.Accept {
				return s.forward(StepEstimationChoice), EffectNone
			}
			s.Form.VIN = ""
			return s.rewindTo(StepVINEntry), EffectNone
		}

	case ChooseManualEntry:
		if s.Step == StepEstimationChoice {
			s.LastError = ""
			return s.forward(StepMaterialEntry), EffectNone
		}

	case ChooseAutoEstimate:
		if s.Step == StepEstimationChoice {
			s.LastError = msgAutoUnavailable
			return s, EffectNone
		}

	case EditMaterials:
		if s.Step == StepMaterialReview {
			s.LastError = ""
			return s.returnOrForward(StepMaterialEntry), EffectNone
		}

	case SetMaterialPercent:
		if s.Step == StepMaterialEntry {
			s.LastError = ""
			s.Form.Materials.Set(ev.Name, ev.Percent)
			return s, EffectNone
		}

	case SaveMaterials:
		if s.Step == StepMaterialEntry {
			s.LastError = ""
			return s.returnOrForward(StepMaterialReview), EffectNone
		}

	case GeneratePathway:
		if s.Step == StepMaterialReview && !s.Busy {
			s.LastError = ""
			s.Busy = true
			return s.forward(StepGenerating), EffectGeneratePathway
		}

	case PathwayReady:
		if s.Step == StepGenerating && s.Busy {
			s.Busy = false
			s.LastError = ""
			pathway := ev.Pathway
			s.Form.Pathway = &pathway
			s.Step = StepResults
			// GeneratePathway pushed the review step; it stays as the Back
			// target for the results. The loading step never enters the
			// history.
			return s, EffectNone
		}
		s.Busy = false
		return s, EffectNone

	case PathwayFailed:
		if s.Step == StepGenerating && s.Busy {
			s.Busy = false
			s.LastError = msgPathwayFailed
			s.Step = StepMaterialReview
			// Undo the push from GeneratePathway so the failed round trip
			// leaves no trace in the history. A previous pathway, if any,
			// stays in the form.
			if n := len(s.history); n > 0 && s.history[n-1] == StepMaterialReview {
				s.history = append([]Step(nil), s.history[:n-1]...)
			}
			return s, EffectNone
		}
		s.Busy = false
		return s, EffectNone

	case Back:
		if s.Step == StepGenerating || len(s.history) == 0 {
			break
		}
		s.LastError = ""
		s.Step = s.history[len(s.history)-1]
		s.history = append([]Step(nil), s.history[:len(s.history)-1]...)
		return s, EffectNone

	case Restart:
		if s.Step == StepResults {
			return NewState(), EffectNone
		}
	}
	return prev, EffectNone
}
