package ui

import (
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const (
	Placeholder             = "N/A"
	DefaultEmergencyContact = "112"
)

// PlanView is a TripPlan with every gap filled in. It is built from the
// raw document field by field so partial or oddly typed AI output still
// renders.
type PlanView struct {
	Title     string
	Summary   string
	Safety    SafetyView
	Transport []TransportView
	Hotels    []HotelView
	Days      []DayView
	Budget    BudgetView
}

type SafetyView struct {
	Score            string
	Tips             []string
	EmergencyContact string
}

type TransportView struct {
	Mode    string
	Details string
	CostEst string
}

type HotelView struct {
	Name   string
	Rating string
	Tags   []string
	Reason string
}

type DayView struct {
	Day        string
	Title      string
	Activities []ActivityView
	FoodSpot   string
}

type ActivityView struct {
	Time        string
	Activity    string
	Description string
}

type BudgetView struct {
	Transport string
	Stay      string
	Food      string
	TotalEst  string
}

// FromJSON never fails: invalid or non-object input yields a view made
// only of placeholders and empty lists.
func FromJSON(raw []byte) PlanView {
	doc := gjson.ParseBytes(raw)
	if !gjson.ValidBytes(raw) || !doc.IsObject() {
		doc = gjson.Result{}
	}
	safety := doc.Get("safety_report")
	budget := doc.Get("budget_breakdown")

	return PlanView{
		Title:   scalar(doc.Get("trip_title")),
		Summary: scalar(doc.Get("summary")),
		Safety: SafetyView{
			Score:            scalar(safety.Get("score")),
			Tips:             strs(safety.Get("tips")),
			EmergencyContact: scalarOr(safety.Get("emergency_contact"), DefaultEmergencyContact),
		},
		Transport: lo.Map(list(doc.Get("transport_options")), func(t gjson.Result, _ int) TransportView {
			return TransportView{
				Mode:    scalar(t.Get("mode")),
				Details: scalar(t.Get("details")),
				CostEst: scalar(t.Get("cost_est")),
			}
		}),
		Hotels: lo.Map(list(doc.Get("hotels")), func(h gjson.Result, _ int) HotelView {
			return HotelView{
				Name:   scalar(h.Get("name")),
				Rating: scalar(h.Get("rating")),
				Tags:   strs(h.Get("tags")),
				Reason: scalar(h.Get("reason")),
			}
		}),
		Days: lo.Map(list(doc.Get("itinerary")), func(d gjson.Result, _ int) DayView {
			return DayView{
				Day:   scalar(d.Get("day")),
				Title: scalar(d.Get("title")),
				Activities: lo.Map(list(d.Get("activities")), func(a gjson.Result, _ int) ActivityView {
					return ActivityView{
						Time:        scalar(a.Get("time")),
						Activity:    scalar(a.Get("activity")),
						Description: scalar(a.Get("description")),
					}
				}),
				FoodSpot: scalar(d.Get("food_spot")),
			}
		}),
		Budget: BudgetView{
			Transport: scalar(budget.Get("transport")),
			Stay:      scalar(budget.Get("stay")),
			Food:      scalar(budget.Get("food")),
			TotalEst:  scalar(budget.Get("total_est")),
		},
	}
}

func scalar(r gjson.Result) string { return scalarOr(r, Placeholder) }

func scalarOr(r gjson.Result, def string) string {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		if s := strings.TrimSpace(r.String()); s != "" {
			return s
		}
	}
	return def
}

// list returns the elements of an array and nothing for any other value.
func list(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

func strs(r gjson.Result) []string {
	return lo.FilterMap(list(r), func(v gjson.Result, _ int) (string, bool) {
		s := scalarOr(v, "")
		return s, s != ""
	})
}
