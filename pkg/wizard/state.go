// SPDX-License-Identifier: Apache-2.0
package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Key names one field of the quiz state
type Key string

const (
	KeyBudget            Key = "budget"
	KeyProductType       Key = "product_type"
	KeyTargetCustomer    Key = "target_customer"
	KeyPrimaryGoal       Key = "primary_goal"
	KeyTimeHorizon       Key = "time_horizon"
	KeyContentCapability Key = "content_capability"
	KeySalesStructure    Key = "sales_structure"
	KeyPriorityKPI       Key = "priority_kpi"
)

// Default values for the two ordinal fields
const (
	DefaultTimeHorizon       = "medium_term"
	DefaultContentCapability = "medium_capability"
)

// Keys returns every field in the fixed section order used for validation
func Keys() []Key {
	return []Key{
		KeyBudget,
		KeyProductType,
		KeyTargetCustomer,
		KeyPrimaryGoal,
		KeyTimeHorizon,
		KeyContentCapability,
		KeySalesStructure,
		KeyPriorityKPI,
	}
}

// Label returns the upper-case section name shown in validation messages
func (k Key) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(k), "_", " "))
}

// State holds the user's answers. Empty string means "not chosen".
type State struct {
	Budget            string `yaml:"budget" json:"budget"`
	ProductType       string `yaml:"product_type" json:"product_type"`
	TargetCustomer    string `yaml:"target_customer" json:"target_customer"`
	PrimaryGoal       string `yaml:"primary_goal" json:"primary_goal"`
	TimeHorizon       string `yaml:"time_horizon" json:"time_horizon"`
	ContentCapability string `yaml:"content_capability" json:"content_capability"`
	SalesStructure    string `yaml:"sales_structure" json:"sales_structure"`
	PriorityKPI       string `yaml:"priority_kpi" json:"priority_kpi"`
}

// NewState returns the initial state with ordinal defaults applied
func NewState() State {
	return State{
		TimeHorizon:       DefaultTimeHorizon,
		ContentCapability: DefaultContentCapability,
	}
}

// field returns a pointer to the struct field behind key
func (s *State) field(key Key) (*string, error) {
	switch key {
	case KeyBudget:
		return &s.Budget, nil
	case KeyProductType:
		return &s.ProductType, nil
	case KeyTargetCustomer:
		return &s.TargetCustomer, nil
	case KeyPrimaryGoal:
		return &s.PrimaryGoal, nil
	case KeyTimeHorizon:
		return &s.TimeHorizon, nil
	case KeyContentCapability:
		return &s.ContentCapability, nil
	case KeySalesStructure:
		return &s.SalesStructure, nil
	case KeyPriorityKPI:
		return &s.PriorityKPI, nil
	default:
		return nil, fmt.Errorf("unknown field: %s", key)
	}
}

// Get returns the value stored under key, or "" for unknown keys
func (s State) Get(key Key) string {
	p, err := s.field(key)
	if err != nil {
		return ""
	}
	return *p
}

// Store is the single source of truth for one quiz session.
// It is owned by the wizard model and is not safe for concurrent use.
type Store struct {
	state    State
	revision int
}

// NewStore creates a store holding the initial state
func NewStore() *Store {
	return &Store{state: NewState()}
}

// NewStoreFrom creates a store seeded with existing answers
func NewStoreFrom(s State) *Store {
	st := NewStore()
	for _, key := range Keys() {
		if v := s.Get(key); v != "" {
			_ = st.SetField(key, v)
		}
	}
	return st
}

// SetField writes a value. Budget values are sanitized first.
func (st *Store) SetField(key Key, value string) error {
	p, err := st.state.field(key)
	if err != nil {
		return err
	}

	if key == KeyBudget {
		value = SanitizeBudget(value)
	}

	if *p == value {
		return nil
	}

	*p = value
	st.revision++
	log.Debug("wizard state update", "key", string(key), "value", value, "revision", st.revision)
	return nil
}

// Field returns the value stored under key
func (st *Store) Field(key Key) string {
	return st.state.Get(key)
}

// IsComplete reports whether every field holds a value
func (st *Store) IsComplete() bool {
	_, missing := st.Missing()
	return !missing
}

// Missing returns the first empty field in section order
func (st *Store) Missing() (Key, bool) {
	for _, key := range Keys() {
		if st.state.Get(key) == "" {
			return key, true
		}
	}
	return "", false
}

// Validate returns a ValidationError naming the first missing field
func (st *Store) Validate() error {
	if key, missing := st.Missing(); missing {
		return &ValidationError{Key: key}
	}
	return nil
}

// Snapshot returns a copy of the current state
func (st *Store) Snapshot() State {
	return st.state
}

// Revision counts effective writes since the store was created
func (st *Store) Revision() int {
	return st.revision
}

// Fingerprint serializes the state in a stable order
func (st *Store) Fingerprint() string {
	var b strings.Builder
	for _, key := range Keys() {
		b.WriteString(string(key))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(st.state.Get(key)))
		b.WriteByte(';')
	}
	return b.String()
}

// BudgetAmount parses the budget; anything unparseable is 0
func (st *Store) BudgetAmount() float64 {
	return ParseBudget(st.state.Budget)
}

// Reset restores the initial state
func (st *Store) Reset() {
	st.state = NewState()
	st.revision++
}

// SanitizeBudget keeps digits and the first decimal point.
// Later points are dropped, so "12.5.6" becomes "12.56".
func SanitizeBudget(raw string) string {
	var b strings.Builder
	seenPoint := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseBudget converts a budget string to a number, 0 when invalid
func ParseBudget(raw string) float64 {
	v, err := strconv.ParseFloat(SanitizeBudget(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
