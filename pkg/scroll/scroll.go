// SPDX-License-Identifier: Apache-2.0

// Package scroll derives wizard navigation state from a single scroll
// position. All measurements are in lines: a section's Top is its offset in
// the scrollable content and the viewport is described by its offset and
// height.
package scroll

import (
	"fmt"
)

// Thresholds expressed as fractions of the viewport height
const (
	ActiveFraction    = 0.5 // A section is current once its top passes this line
	EnterFormFraction = 0.7 // Next control appears once the first card passes this line
	ReachEndFraction  = 0.5 // Next control hides once the summary passes this line
	LastCardFraction  = 0.4 // Label switches to Summarize once the last card passes this line
)

// Section is one block of the scrollable content
type Section struct {
	ID     string
	Top    int
	Height int
}

// Bottom returns the first line after the section
func (s Section) Bottom() int {
	return s.Top + s.Height
}

// StepState classifies a step relative to the current section
type StepState int

const (
	StepUpcoming StepState = iota
	StepActive
	StepVisited
)

func (s StepState) String() string {
	switch s {
	case StepActive:
		return "active"
	case StepVisited:
		return "visited"
	default:
		return "upcoming"
	}
}

// Layout is the ordered list of sections. The first section is the landing
// block, the last one is the summary, everything in between is a quiz card.
type Layout struct {
	Sections []Section
}

// NewLayout builds a layout by stacking sections of the given heights
func NewLayout(ids []string, heights []int) (Layout, error) {
	if len(ids) != len(heights) {
		return Layout{}, fmt.Errorf("layout: %d ids but %d heights", len(ids), len(heights))
	}
	if len(ids) < 3 {
		return Layout{}, fmt.Errorf("layout: need a home, at least one card and a summary, got %d sections", len(ids))
	}
	sections := make([]Section, len(ids))
	top := 0
	for i, id := range ids {
		sections[i] = Section{ID: id, Top: top, Height: heights[i]}
		top += heights[i]
	}
	return Layout{Sections: sections}, nil
}

// Height is the total content height
func (l Layout) Height() int {
	if len(l.Sections) == 0 {
		return 0
	}
	return l.Sections[len(l.Sections)-1].Bottom()
}

// Index returns the position of a section id, or -1
func (l Layout) Index(id string) int {
	for i, s := range l.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// firstCard and lastCard are the indexes of the quiz cards
func (l Layout) firstCard() int { return 1 }
func (l Layout) lastCard() int  { return len(l.Sections) - 2 }
func (l Layout) summary() int   { return len(l.Sections) - 1 }

// relTop is a section's top edge relative to the viewport
func (l Layout) relTop(i, offset int) int {
	return l.Sections[i].Top - offset
}

// above reports whether section i's top has crossed above fraction*height
func (l Layout) above(i, offset, height int, fraction float64) bool {
	return float64(l.relTop(i, offset)) < float64(height)*fraction
}

// Current returns the index of the last section whose top edge is above the
// activation line. The landing section is current when nothing has crossed.
func (l Layout) Current(offset, height int) int {
	current := 0
	for i := range l.Sections {
		if l.above(i, offset, height, ActiveFraction) {
			current = i
		}
	}
	return current
}

// Steps classifies each section after the landing block (cards and summary)
func (l Layout) Steps(offset, height int) []StepState {
	return Classify(len(l.Sections)-1, l.Current(offset, height)-1)
}

// Classify returns n step states for an active index. Indexes before it are
// visited and indexes after it upcoming; a negative index leaves all upcoming.
func Classify(n, active int) []StepState {
	states := make([]StepState, n)
	for i := range states {
		switch {
		case i < active:
			states[i] = StepVisited
		case i == active:
			states[i] = StepActive
		default:
			states[i] = StepUpcoming
		}
	}
	return states
}

// NextVisible reports whether the floating next control should be shown
func (l Layout) NextVisible(offset, height int) bool {
	inside := l.above(l.firstCard(), offset, height, EnterFormFraction)
	atEnd := l.above(l.summary(), offset, height, ReachEndFraction)
	return inside && !atEnd
}

// Label values for the floating control
const (
	LabelNext      = "Next Section"
	LabelSummarize = "Summarize"
)

// NextLabel returns the label of the floating control
func (l Layout) NextLabel(offset, height int) string {
	if l.WantsSummarize(offset, height) {
		return LabelSummarize
	}
	return LabelNext
}

// WantsSummarize reports whether the last card is substantially in view
func (l Layout) WantsSummarize(offset, height int) bool {
	return l.above(l.lastCard(), offset, height, LastCardFraction)
}

// NextTarget returns the index of the nearest section below the scroll
// centre that has not been passed. It never returns the landing section and
// falls back to the summary.
func (l Layout) NextTarget(offset, height int) int {
	center := offset + height/2
	for i := 0; i < len(l.Sections)-1; i++ {
		if center < l.Sections[i].Bottom() {
			return i + 1
		}
	}
	return l.summary()
}

// CenterOffset returns the scroll offset that vertically centres section i,
// clamped to the scrollable range.
func (l Layout) CenterOffset(i, height int) int {
	s := l.Sections[i]
	target := s.Top - height/2 + s.Height/2
	return l.Clamp(target, height)
}

// Clamp limits an offset to [0, content height - viewport height]
func (l Layout) Clamp(offset, height int) int {
	maxOffset := l.Height() - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// Progress is everything the view needs, derived from one scroll position
type Progress struct {
	Offset      int
	Current     int
	CurrentID   string
	Steps       []StepState
	NextVisible bool
	NextLabel   string
}

// Derive computes the navigation state for a scroll position
func (l Layout) Derive(offset, height int) Progress {
	if len(l.Sections) < 3 {
		return Progress{Offset: offset}
	}
	current := l.Current(offset, height)
	return Progress{
		Offset:      offset,
		Current:     current,
		CurrentID:   l.Sections[current].ID,
		Steps:       l.Steps(offset, height),
		NextVisible: l.NextVisible(offset, height),
		NextLabel:   l.NextLabel(offset, height),
	}
}
