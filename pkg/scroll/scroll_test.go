// SPDX-License-Identifier: Apache-2.0
package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLayout stacks home, three cards and a summary, 20 lines each
func testLayout(t *testing.T) Layout {
	t.Helper()
	l, err := NewLayout(
		[]string{"home", "a", "b", "c", "summary"},
		[]int{20, 20, 20, 20, 20},
	)
	require.NoError(t, err)
	return l
}

func TestNewLayout(t *testing.T) {
	l := testLayout(t)
	assert.Equal(t, 100, l.Height())
	assert.Equal(t, 40, l.Sections[2].Top)
	assert.Equal(t, 60, l.Sections[2].Bottom())
	assert.Equal(t, 3, l.Index("c"))
	assert.Equal(t, -1, l.Index("zzz"))

	_, err := NewLayout([]string{"a"}, []int{1, 2})
	assert.Error(t, err)
	_, err = NewLayout([]string{"a", "b"}, []int{1, 2})
	assert.Error(t, err)
}

func TestCurrent_MidpointRule(t *testing.T) {
	l := testLayout(t)
	const height = 20

	// Section k's top above the midpoint and k+1's not means current == k
	for k := 0; k < len(l.Sections); k++ {
		// Put section k's top just above the midpoint line
		offset := l.Sections[k].Top - height/2 + 1
		if offset < 0 {
			offset = 0
		}
		assert.Equal(t, k, l.Current(offset, height), "section %d", k)
	}

	// Exactly on the midpoint is not "above"
	offset := l.Sections[2].Top - height/2
	assert.Equal(t, 1, l.Current(offset, height))
}

func TestSteps_Classification(t *testing.T) {
	l := testLayout(t)
	const height = 20

	steps := l.Steps(0, height)
	require.Len(t, steps, 4)
	for _, s := range steps {
		assert.Equal(t, StepUpcoming, s)
	}

	// Current section is "b" (index 2) -> step index 1 active
	offset := l.Sections[2].Top - height/2 + 1
	steps = l.Steps(offset, height)
	assert.Equal(t, []StepState{StepVisited, StepActive, StepUpcoming, StepUpcoming}, steps)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, []StepState{StepVisited, StepVisited, StepActive}, Classify(3, 2))
	assert.Equal(t, []StepState{StepUpcoming, StepUpcoming}, Classify(2, -1))
	assert.Equal(t, "visited", StepVisited.String())
	assert.Equal(t, "active", StepActive.String())
	assert.Equal(t, "upcoming", StepUpcoming.String())
}

func TestNextVisible(t *testing.T) {
	l := testLayout(t)
	const height = 20

	// First card top at rel 20 -> not above 70% (14)
	assert.False(t, l.NextVisible(0, height))
	// rel 13 -> inside the form
	assert.True(t, l.NextVisible(7, height))
	// Summary top (80) rel < 10 -> reached the end
	assert.False(t, l.NextVisible(71, height))
	assert.True(t, l.NextVisible(70, height))
}

func TestNextLabel(t *testing.T) {
	l := testLayout(t)
	const height = 20

	// Last card "c" top at 60; switches once rel < 8
	assert.Equal(t, LabelNext, l.NextLabel(52, height))
	assert.Equal(t, LabelSummarize, l.NextLabel(53, height))
}

func TestNextTarget(t *testing.T) {
	l := testLayout(t)
	const height = 20

	// Centre at 10 is inside home -> target first card
	assert.Equal(t, 1, l.NextTarget(0, height))
	// Centre at 30 is inside "a" -> target "b"
	assert.Equal(t, 2, l.NextTarget(20, height))
	// Centre at 75 is inside "c" -> target summary
	assert.Equal(t, 4, l.NextTarget(65, height))
	// Centre past every non-summary section -> summary
	assert.Equal(t, 4, l.NextTarget(80, height))
}

func TestCenterOffset(t *testing.T) {
	l := testLayout(t)
	const height = 20

	// sectionTop - viewportHeight/2 + sectionHeight/2
	assert.Equal(t, 40, l.CenterOffset(2, height))
	// Clamped at the top
	assert.Equal(t, 0, l.CenterOffset(0, height))
	// Clamped at the bottom (max offset 80)
	assert.Equal(t, 80, l.CenterOffset(4, height))
}

func TestClamp_ShortContent(t *testing.T) {
	l := testLayout(t)
	assert.Equal(t, 0, l.Clamp(50, 500))
	assert.Equal(t, 0, l.Clamp(-3, 20))
}

func TestDerive(t *testing.T) {
	l := testLayout(t)
	p := l.Derive(53, 20)

	assert.Equal(t, 53, p.Offset)
	assert.Equal(t, 3, p.Current)
	assert.Equal(t, "c", p.CurrentID)
	assert.True(t, p.NextVisible)
	assert.Equal(t, LabelSummarize, p.NextLabel)
	assert.Len(t, p.Steps, 4)

	assert.Equal(t, Progress{Offset: 5}, Layout{}.Derive(5, 20))
}
