package types

// TripRequest is the body of POST /generate.
type TripRequest struct {
	Prompt    string `json:"prompt"`
	Budget    string `json:"budget"`
	Transport string `json:"transport"`
	Diet      string `json:"diet"`
	Language  string `json:"language"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

// TripPlan is the itinerary shape the AI is asked to produce. Every field
// may be missing in practice; it is only decoded into when strict plan
// validation is enabled.
type TripPlan struct {
	TripTitle        string            `json:"trip_title"`
	Summary          string            `json:"summary"`
	SafetyReport     *SafetyReport     `json:"safety_report,omitempty"`
	TransportOptions []TransportOption `json:"transport_options,omitempty"`
	Hotels           []Hotel           `json:"hotels,omitempty"`
	Itinerary        []Day             `json:"itinerary,omitempty"`
	BudgetBreakdown  *BudgetBreakdown  `json:"budget_breakdown,omitempty"`
}

type SafetyReport struct {
	Score            string   `json:"score"`
	Tips             []string `json:"tips"`
	EmergencyContact string   `json:"emergency_contact"`
}

type TransportOption struct {
	Mode    string `json:"mode"`
	Details string `json:"details"`
	CostEst string `json:"cost_est"`
}

type Hotel struct {
	Name   string   `json:"name"`
	Rating string   `json:"rating"`
	Tags   []string `json:"tags"`
	Reason string   `json:"reason"`
}

type Day struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
	FoodSpot   string     `json:"food_spot"`
}

type Activity struct {
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Description string `json:"description"`
}

type BudgetBreakdown struct {
	Transport string `json:"transport"`
	Stay      string `json:"stay"`
	Food      string `json:"food"`
	TotalEst  string `json:"total_est"`
}
