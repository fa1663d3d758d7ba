package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recywise/recywise-tui/internal/config"
	"github.com/recywise/recywise-tui/internal/session"
	"github.com/recywise/recywise-tui/internal/wizard"
)

const appName = "RecyWise"

// Gateway is the backend surface the walkthrough needs. *api.Client satisfies
// it; tests substitute a stub.
type Gateway interface {
	DecodeVIN(ctx context.Context, vin string) (session.VehicleRecord, error)
	GeneratePathway(ctx context.Context, vehicle session.VehicleRecord, materials session.MaterialComposition) (session.Pathway, error)
}

// ---------------------------------------------------------------------------
// Bubble Tea messages
// ---------------------------------------------------------------------------

type vinDecodedMsg struct {
	vehicle session.VehicleRecord
	err     error
}

type pathwayDoneMsg struct {
	pathway session.Pathway
	err     error
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is the terminal shell around the wizard. It turns key presses into
// wizard events, runs the effect a transition asks for, and renders the
// resolved screen.
type Model struct {
	ctx      context.Context
	gateway  Gateway
	log      *slog.Logger
	keys     keyMap
	state    wizard.State
	currency string

	vinInput       textinput.Model
	vehicleInputs  [3]textinput.Model
	materialInputs [6]textinput.Model
	focus          int

	width  int
	height int
}

// New builds the model with a fresh walkthrough session.
func New(ctx context.Context, cfg config.Config, gateway Gateway, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}

	vin := textinput.New()
	vin.Prompt = "VIN: "
	vin.Placeholder = "1HGCM82633A004352"
	vin.CharLimit = 17
	vin.Width = 24
	vin.PromptStyle = fieldLabelStyle

	var vehicle [3]textinput.Model
	for i, label := range [3]string{"Year", "Make", "Model"} {
		inp := textinput.New()
		inp.Prompt = label + ": "
		inp.Width = 24
		inp.PromptStyle = fieldLabelStyle
		vehicle[i] = inp
	}
	vehicle[0].CharLimit = 4
	vehicle[0].Width = 8

	var materials [6]textinput.Model
	for i, name := range session.MaterialNames() {
		inp := textinput.New()
		inp.Prompt = fmt.Sprintf("%-8s %%: ", name)
		inp.Placeholder = "0"
		inp.CharLimit = 6
		inp.Width = 8
		inp.PromptStyle = fieldLabelStyle
		materials[i] = inp
	}

	state := wizard.NewState()
	log.Info("wizard session started", "session", state.ID)

	return Model{
		ctx:            ctx,
		gateway:        gateway,
		log:            log,
		keys:           newKeyMap(),
		state:          state,
		currency:       cfg.UI.CurrencySymbol,
		vinInput:       vin,
		vehicleInputs:  vehicle,
		materialInputs: materials,
	}
}

// ---------------------------------------------------------------------------
// Bubble Tea interface: Init / Update
// ---------------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case vinDecodedMsg:
		if msg.err != nil {
			m.log.Warn("vin decode failed", "session", m.state.ID, "error", msg.err)
			return m.dispatch(wizard.VINDecodeFailed{Err: msg.err})
		}
		return m.dispatch(wizard.VINDecoded{Vehicle: msg.vehicle})
	case pathwayDoneMsg:
		if msg.err != nil {
			m.log.Warn("pathway generation failed", "session", m.state.ID, "error", msg.err)
			return m.dispatch(wizard.PathwayFailed{Err: msg.err})
		}
		return m.dispatch(wizard.PathwayReady{Pathway: msg.pathway})
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Key handling
// ---------------------------------------------------------------------------

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	switch m.state.Step {
	case wizard.StepVINEntry:
		return m.handleVINKey(msg)
	case wizard.StepManualEntry:
		return m.handleVehicleKey(msg)
	case wizard.StepMaterialEntry:
		return m.handleMaterialKey(msg)
	case wizard.StepGenerating:
		// Nothing to steer while a pathway is being generated.
		return m, nil
	}
	return m.handleMenuKey(msg)
}

func (m Model) handleVINKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.dispatch(wizard.Back{})
	case msg.String() == "enter":
		return m.dispatch(wizard.SubmitVIN{})
	}
	var cmd tea.Cmd
	m.vinInput, cmd = m.vinInput.Update(msg)
	next, dispatchCmd := m.dispatch(wizard.SetVIN{Value: m.vinInput.Value()})
	return next, tea.Batch(cmd, dispatchCmd)
}

func (m Model) handleVehicleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.dispatch(wizard.Back{})
	case key.Matches(msg, m.keys.NextField):
		return m.moveVehicleFocus(1), nil
	case key.Matches(msg, m.keys.PrevField):
		return m.moveVehicleFocus(-1), nil
	case msg.String() == "enter":
		return m.dispatch(wizard.SubmitVehicle{})
	}
	var cmd tea.Cmd
	m.vehicleInputs[m.focus], cmd = m.vehicleInputs[m.focus].Update(msg)
	next, dispatchCmd := m.dispatch(wizard.SetVehicleField{
		Field: vehicleFieldAt(m.focus),
		Value: m.vehicleInputs[m.focus].Value(),
	})
	return next, tea.Batch(cmd, dispatchCmd)
}

func (m Model) handleMaterialKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.dispatch(wizard.Back{})
	case key.Matches(msg, m.keys.NextField):
		return m.moveMaterialFocus(1), nil
	case key.Matches(msg, m.keys.PrevField):
		return m.moveMaterialFocus(-1), nil
	case msg.String() == "enter":
		m = m.commitMaterials()
		return m.dispatch(wizard.SaveMaterials{})
	}
	var cmd tea.Cmd
	m.materialInputs[m.focus], cmd = m.materialInputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Back) {
		return m.dispatch(wizard.Back{})
	}
	switch m.state.Step {
	case wizard.StepLanding:
		if msg.String() == "enter" {
			return m.dispatch(wizard.Start{})
		}
	case wizard.StepConfirmVehicle:
		switch msg.String() {
		case "y":
			return m.dispatch(wizard.Confirm{Accept: true})
		case "n":
			return m.dispatch(wizard.Confirm{Accept: false})
		}
	case wizard.StepEstimationChoice:
		switch msg.String() {
		case "m":
			return m.dispatch(wizard.ChooseManualEntry{})
		case "a":
			return m.dispatch(wizard.ChooseAutoEstimate{})
		}
	case wizard.StepMaterialReview:
		switch msg.String() {
		case "g":
			return m.dispatch(wizard.GeneratePathway{})
		case "e":
			return m.dispatch(wizard.EditMaterials{})
		}
	case wizard.StepResults:
		if msg.String() == "n" {
			return m.dispatch(wizard.Restart{})
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Focus and input plumbing
// ---------------------------------------------------------------------------

func (m Model) moveVehicleFocus(dir int) Model {
	m.vehicleInputs[m.focus].Blur()
	m.focus = (m.focus + dir + len(m.vehicleInputs)) % len(m.vehicleInputs)
	m.vehicleInputs[m.focus].Focus()
	return m
}

// moveMaterialFocus commits the field being left, so the total stays current
// while the user tabs around.
func (m Model) moveMaterialFocus(dir int) Model {
	m = m.commitMaterialAt(m.focus)
	m.materialInputs[m.focus].Blur()
	m.focus = (m.focus + dir + len(m.materialInputs)) % len(m.materialInputs)
	m.materialInputs[m.focus].Focus()
	return m
}

func (m Model) commitMaterialAt(i int) Model {
	ev := wizard.SetMaterialPercent{
		Name:    session.MaterialNames()[i],
		Percent: session.CoercePercent(m.materialInputs[i].Value()),
	}
	m.state, _ = wizard.Transition(m.state, ev)
	return m
}

// commitMaterials copies every material input into the form. Coercion turns
// blank or malformed text into 0 rather than blocking the save.
func (m Model) commitMaterials() Model {
	for i := range m.materialInputs {
		m = m.commitMaterialAt(i)
	}
	return m
}

func vehicleFieldAt(i int) wizard.VehicleField {
	switch i {
	case 1:
		return wizard.FieldMake
	case 2:
		return wizard.FieldModel
	}
	return wizard.FieldYear
}

// enterStep reseeds the input widgets for the step the wizard just moved to.
// The widgets hold the live text; the form only sees it through events.
func (m Model) enterStep() Model {
	m.vinInput.Blur()
	for i := range m.vehicleInputs {
		m.vehicleInputs[i].Blur()
	}
	for i := range m.materialInputs {
		m.materialInputs[i].Blur()
	}
	m.focus = 0

	switch m.state.Step {
	case wizard.StepVINEntry:
		m.vinInput.SetValue(m.state.Form.VIN)
		m.vinInput.Focus()
	case wizard.StepManualEntry:
		m.vehicleInputs[0].SetValue(m.state.Form.Vehicle.Year)
		m.vehicleInputs[1].SetValue(m.state.Form.Vehicle.Make)
		m.vehicleInputs[2].SetValue(m.state.Form.Vehicle.Model)
		m.vehicleInputs[0].Focus()
	case wizard.StepMaterialEntry:
		for i, name := range session.MaterialNames() {
			value := ""
			if p := m.state.Form.Materials.Percent(name); p != 0 {
				value = formatPercent(p)
			}
			m.materialInputs[i].SetValue(value)
		}
		m.materialInputs[0].Focus()
	}
	return m
}

// liveInputs returns the widgets standing in for the current screen's
// editable fields, in field order.
func (m Model) liveInputs() []textinput.Model {
	switch m.state.Step {
	case wizard.StepVINEntry:
		return []textinput.Model{m.vinInput}
	case wizard.StepManualEntry:
		return m.vehicleInputs[:]
	case wizard.StepMaterialEntry:
		return m.materialInputs[:]
	}
	return nil
}

// ---------------------------------------------------------------------------
// Dispatch and effects
// ---------------------------------------------------------------------------

// dispatch runs one event through the wizard and starts whatever work the
// transition asks for.
func (m Model) dispatch(ev wizard.Event) (Model, tea.Cmd) {
	prev := m.state
	next, effect := wizard.Transition(prev, ev)
	m.state = next
	if next.Step != prev.Step {
		m.log.Info("step change",
			"session", next.ID,
			"from", prev.Step.String(),
			"to", next.Step.String(),
		)
		m = m.enterStep()
	}
	switch effect {
	case wizard.EffectDecodeVIN:
		m.log.Debug("running effect", "session", next.ID, "effect", effect.String())
		return m, m.decodeVINCmd(next.Form.VIN)
	case wizard.EffectGeneratePathway:
		m.log.Debug("running effect", "session", next.ID, "effect", effect.String())
		return m, m.generatePathwayCmd(next.Form.Vehicle, next.Form.Materials)
	}
	return m, nil
}

func (m Model) decodeVINCmd(vin string) tea.Cmd {
	return func() tea.Msg {
		vehicle, err := m.gateway.DecodeVIN(m.ctx, vin)
		return vinDecodedMsg{vehicle: vehicle, err: err}
	}
}

func (m Model) generatePathwayCmd(vehicle session.VehicleRecord, materials session.MaterialComposition) tea.Cmd {
	return func() tea.Msg {
		pathway, err := m.gateway.GeneratePathway(m.ctx, vehicle, materials)
		return pathwayDoneMsg{pathway: pathway, err: err}
	}
}
