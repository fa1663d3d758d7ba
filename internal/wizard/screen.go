package wizard

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/recywise/recywise-tui/internal/session"
)

// ---------------------------------------------------------------------------
// Screen descriptors
// ---------------------------------------------------------------------------

// Screen describes what one step shows. Resolve builds it from the state
// alone, so the terminal layer renders without reaching back into the wizard.
type Screen struct {
	Step     Step
	Title    string
	Body     []string
	Fields   []Field
	Table    *Table
	Actions  []Action
	Notice   string
	Err      string
	Busy     bool
	BusyText string
}

// Field is a labelled value, editable or not.
type Field struct {
	Label    string
	Value    string
	Editable bool
}

// Table is tabular read-only content with an optional footer line.
type Table struct {
	Columns []string
	Rows    [][]string
	Footer  string
}

// Action is one keyed choice offered by a screen. Disabled actions are shown
// but refuse to fire.
type Action struct {
	Key     string
	Label   string
	Enabled bool
}

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

// Resolve maps a state to its screen. Same state, same screen: it reads
// nothing but its arguments. currency prefixes money amounts.
func Resolve(s State, currency string) Screen {
	switch s.Step {
	case StepLanding:
		return Screen{
			Step:  s.Step,
			Title: "RecyWise",
			Body: []string{
				"Turn end-of-life vehicles into ranked recycling pathways.",
				"Identify the vehicle, review its material split, and get a",
				"profit-ordered plan of recycling actions.",
			},
			Actions: []Action{
				{Key: "enter", Label: "Start", Enabled: true},
			},
		}

	case StepVINEntry:
		return Screen{
			Step:  s.Step,
			Title: "Vehicle Identification",
			Fields: []Field{
				{Label: "VIN", Value: s.Form.VIN, Editable: true},
			},
			Notice: "Enter at least 5 characters of the VIN.",
			Actions: []Action{
				{Key: "enter", Label: "Decode VIN", Enabled: len(s.Form.VIN) >= minVINLength && !s.Busy},
				backAction(s),
			},
			Err:      s.LastError,
			Busy:     s.Busy,
			BusyText: "Decoding VIN",
		}

	case StepManualEntry:
		return Screen{
			Step:  s.Step,
			Title: "Vehicle Details",
			Body: []string{
				"VIN lookup was unavailable. Enter the vehicle details manually.",
			},
			Fields: []Field{
				{Label: "Year", Value: s.Form.Vehicle.Year, Editable: true},
				{Label: "Make", Value: s.Form.Vehicle.Make, Editable: true},
				{Label: "Model", Value: s.Form.Vehicle.Model, Editable: true},
			},
			Actions: []Action{
				{Key: "enter", Label: "Continue", Enabled: true},
				backAction(s),
			},
			Err: s.LastError,
		}

	case StepConfirmVehicle:
		return Screen{
			Step:  s.Step,
			Title: "Confirm Vehicle",
			Body:  []string{"Is this the vehicle being processed?"},
			Fields: []Field{
				{Label: "Year", Value: s.Form.Vehicle.Year},
				{Label: "Make", Value: s.Form.Vehicle.Make},
				{Label: "Model", Value: s.Form.Vehicle.Model},
			},
			Actions: []Action{
				{Key: "y", Label: "Yes, continue", Enabled: true},
				{Key: "n", Label: "No, re-enter VIN", Enabled: true},
				backAction(s),
			},
			Err: s.LastError,
		}

	case StepEstimationChoice:
		return Screen{
			Step:  s.Step,
			Title: "Material Estimation",
			Body:  []string{"How should the material composition be estimated?"},
			Actions: []Action{
				{Key: "m", Label: "Enter materials manually", Enabled: true},
				{Key: "a", Label: "AI auto-estimate (coming soon)", Enabled: false},
				backAction(s),
			},
			Err: s.LastError,
		}

	case StepMaterialReview:
		return Screen{
			Step:   s.Step,
			Title:  "Material Composition",
			Body:   []string{"Review the material split before generating a pathway."},
			Table:  materialTable(s.Form.Materials),
			Notice: totalNotice(s.Form.Materials),
			Actions: []Action{
				{Key: "g", Label: "Generate pathway", Enabled: !s.Busy},
				{Key: "e", Label: "Edit materials", Enabled: true},
				backAction(s),
			},
			Err: s.LastError,
		}

	case StepMaterialEntry:
		fields := make([]Field, 0, len(session.MaterialNames()))
		for _, name := range session.MaterialNames() {
			fields = append(fields, Field{
				Label:    name,
				Value:    formatPercentValue(s.Form.Materials.Percent(name)),
				Editable: true,
			})
		}
		return Screen{
			Step:   s.Step,
			Title:  "Edit Material Composition",
			Body:   []string{"Percent of vehicle mass per material."},
			Fields: fields,
			Notice: totalNotice(s.Form.Materials),
			Actions: []Action{
				{Key: "enter", Label: "Save", Enabled: true},
				backAction(s),
			},
			Err: s.LastError,
		}

	case StepGenerating:
		return Screen{
			Step:     s.Step,
			Title:    "Generating Pathway",
			Body:     []string{"Scoring recycling actions against current market prices."},
			Busy:     true,
			BusyText: "Generating recycling pathway",
		}

	case StepResults:
		return resultsScreen(s, currency)
	}

	return Screen{
		Step:  s.Step,
		Title: "Error",
		Err:   fmt.Sprintf("unknown wizard step %d", int(s.Step)),
	}
}

func resultsScreen(s State, currency string) Screen {
	scr := Screen{
		Step:  s.Step,
		Title: "Recycling Pathway",
		Actions: []Action{
			{Key: "n", Label: "Process next vehicle", Enabled: true},
			backAction(s),
		},
		Err: s.LastError,
	}
	pathway := s.Form.Pathway
	if pathway == nil {
		scr.Body = []string{"No pathway has been generated."}
		return scr
	}

	vehicle := pathway.Vehicle
	if vehicle == "" {
		vehicle = s.Form.Vehicle.String()
	}
	scr.Body = append(scr.Body, "Vehicle: "+vehicle)
	if pathway.VehicleWeightLbs > 0 {
		scr.Body = append(scr.Body, fmt.Sprintf("Estimated weight: %.0f lbs", pathway.VehicleWeightLbs))
	}
	if len(pathway.MarketPrices) > 0 {
		scr.Body = append(scr.Body, "Market prices: "+marketPricesLine(pathway.MarketPrices, currency))
	}
	if total := pathway.TotalTimeMins(); total > 0 {
		scr.Body = append(scr.Body, fmt.Sprintf("Estimated total time: %s min", formatMinutes(total)))
	}

	rows := make([][]string, 0, len(pathway.Steps))
	for _, step := range pathway.Steps {
		rows = append(rows, []string{
			strconv.Itoa(step.Sequence),
			step.Action,
			formatMinutes(step.EstimatedTimeMins),
			formatMoney(currency, step.ProjectedProfit),
			fmt.Sprintf("%.2f", step.ModelScore),
		})
	}
	scr.Table = &Table{
		Columns: []string{"#", "Action", "Time (min)", "Profit", "Score"},
		Rows:    rows,
		Footer:  "Total projected profit: " + formatMoney(currency, pathway.TotalProfit()),
	}
	return scr
}

func backAction(s State) Action {
	return Action{Key: "esc", Label: "Back", Enabled: s.CanGoBack()}
}

func materialTable(mc session.MaterialComposition) *Table {
	rows := make([][]string, 0, len(session.MaterialNames()))
	for _, name := range session.MaterialNames() {
		rows = append(rows, []string{name, formatPercentValue(mc.Percent(name)) + "%"})
	}
	return &Table{
		Columns: []string{"Material", "Percent"},
		Rows:    rows,
		Footer:  "Total: " + formatPercentValue(mc.Total()) + "%",
	}
}

func totalNotice(mc session.MaterialComposition) string {
	total := mc.Total()
	if math.Abs(total-100) < 1e-9 {
		return ""
	}
	return fmt.Sprintf("Percentages add up to %s%%, not 100%%.", formatPercentValue(total))
}

// priceDisplay translates the backend's market price keys into labels
// with the right unit. Material prices are per pound, labor is hourly.
var priceDisplay = map[string]struct {
	Label string
	Unit  string
}{
	"p_steel":    {"Steel", "/lb"},
	"p_alum":     {"Aluminum", "/lb"},
	"p_copper":   {"Copper", "/lb"},
	"p_plastic":  {"Plastics", "/lb"},
	"p_rubber":   {"Rubber", "/lb"},
	"p_glass":    {"Glass", "/lb"},
	"labor_rate": {"Labor", "/hr"},
}

// priceOrder fixes the order of known keys so the summary line is stable.
var priceOrder = []string{
	"p_steel", "p_alum", "p_copper", "p_plastic", "p_rubber", "p_glass",
	"labor_rate",
}

func marketPricesLine(prices map[string]float64, currency string) string {
	parts := make([]string, 0, len(prices))
	seen := make(map[string]bool, len(prices))
	for _, key := range priceOrder {
		value, ok := prices[key]
		if !ok {
			continue
		}
		display := priceDisplay[key]
		parts = append(parts, display.Label+" "+formatMoney(currency, value)+display.Unit)
		seen[key] = true
	}

	// Keys the backend added after this client shipped still show up,
	// just without a friendly label.
	extras := make([]string, 0, len(prices))
	for key := range prices {
		if !seen[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		parts = append(parts, key+" "+formatMoney(currency, prices[key]))
	}
	return strings.Join(parts, ", ")
}

func formatPercentValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMinutes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMoney(currency string, v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%s%.2f", sign, currency, v)
}
