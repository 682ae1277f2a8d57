// SPDX-License-Identifier: Apache-2.0
package analysis

import (
	"encoding/json"

	"github.com/marx-labs/marx/pkg/wizard"
)

// Request is the JSON body sent to the analysis service.
// The budget travels as raw_budget_amount; the raw string is not sent.
type Request struct {
	ProductType       string  `json:"product_type"`
	TargetCustomer    string  `json:"target_customer"`
	PrimaryGoal       string  `json:"primary_goal"`
	TimeHorizon       string  `json:"time_horizon"`
	ContentCapability string  `json:"content_capability"`
	SalesStructure    string  `json:"sales_structure"`
	PriorityKPI       string  `json:"priority_kpi"`
	RawBudgetAmount   float64 `json:"raw_budget_amount"`
}

// NewRequest builds the payload from quiz answers
func NewRequest(s wizard.State) Request {
	return Request{
		ProductType:       s.ProductType,
		TargetCustomer:    s.TargetCustomer,
		PrimaryGoal:       s.PrimaryGoal,
		TimeHorizon:       s.TimeHorizon,
		ContentCapability: s.ContentCapability,
		SalesStructure:    s.SalesStructure,
		PriorityKPI:       s.PriorityKPI,
		RawBudgetAmount:   wizard.ParseBudget(s.Budget),
	}
}

// Allocation is one entry of budget_allocation
type Allocation struct {
	StrategyCode  string  `json:"strategy_code"`
	Percentage    float64 `json:"percentage"`
	MonthlyAmount float64 `json:"monthly_amount"`
}

// Tactic is one entry of channel_tactics
type Tactic struct {
	StrategyCode    string `json:"strategy_code"`
	Tactic          string `json:"tactic"`
	Priority        string `json:"priority"`
	ExpectedOutcome string `json:"expected_outcome"`
}

// Response mirrors the service's reply. Missing arrays decode as empty
// slices and missing numbers as zero.
type Response struct {
	Status                string       `json:"status,omitempty"`
	RecommendedStrategies []string     `json:"recommended_strategies"`
	CriticalInsights      []string     `json:"critical_insights"`
	BudgetAllocation      []Allocation `json:"budget_allocation"`
	ChannelTactics        []Tactic     `json:"channel_tactics"`
	TotalMonthlyBudget    float64      `json:"total_monthly_budget"`
	ActionPlan            []string     `json:"action_plan"`
	Resources             []string     `json:"resources"`
}

// envelope is the {status, data} wrapper some service versions return
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// normalize replaces nil slices with empty ones
func (r *Response) normalize() {
	if r.RecommendedStrategies == nil {
		r.RecommendedStrategies = []string{}
	}
	if r.CriticalInsights == nil {
		r.CriticalInsights = []string{}
	}
	if r.BudgetAllocation == nil {
		r.BudgetAllocation = []Allocation{}
	}
	if r.ChannelTactics == nil {
		r.ChannelTactics = []Tactic{}
	}
	if r.ActionPlan == nil {
		r.ActionPlan = []string{}
	}
	if r.Resources == nil {
		r.Resources = []string{}
	}
}

// DecodeResponse parses a response body, unwrapping the {status, data}
// envelope when present. Only a body that is not a JSON object is an error.
func DecodeResponse(body []byte) (*Response, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	payload := body
	if len(env.Data) > 0 && string(env.Data) != "null" {
		payload = env.Data
	}

	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if resp.Status == "" {
		resp.Status = env.Status
	}
	resp.normalize()
	return &resp, nil
}
