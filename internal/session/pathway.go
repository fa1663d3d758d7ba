package session

// PathwayStep is one action in a generated recycling pathway.
type PathwayStep struct {
	Sequence          int     `json:"sequence"`
	Action            string  `json:"action"`
	EstimatedTimeMins float64 `json:"estimated_time_mins"`
	ProjectedProfit   float64 `json:"projected_profit"`
	ModelScore        float64 `json:"model_score"`
}

// Pathway is the backend's ranked recycling plan for one vehicle, kept
// exactly as returned. A later generation replaces it wholesale.
type Pathway struct {
	Vehicle          string             `json:"vehicle"`
	VehicleWeightLbs float64            `json:"vehicle_weight_lbs"`
	MarketPrices     map[string]float64 `json:"market_prices_used"`
	Steps            []PathwayStep      `json:"pathway"`
}

// TotalProfit sums the projected profit across all steps. Losses are
// negative and subtract.
func (p Pathway) TotalProfit() float64 {
	var total float64
	for _, step := range p.Steps {
		total += step.ProjectedProfit
	}
	return total
}

// TotalTimeMins sums the estimated processing time across all steps.
func (p Pathway) TotalTimeMins() float64 {
	var total float64
	for _, step := range p.Steps {
		total += step.EstimatedTimeMins
	}
	return total
}
