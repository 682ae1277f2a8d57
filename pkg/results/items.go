// SPDX-License-Identifier: Apache-2.0
package results

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marx-labs/marx/pkg/config"
)

// Tag is the bracketed category prefix of an action plan or resource line
type Tag int

const (
	TagNone Tag = iota
	TagQuickWin
	TagKPI
	TagRisk
	TagScaling
	TagTool
	TagCapability
	TagPartner
	TagCostTip
)

var tagNames = map[string]Tag{
	"quick win":  TagQuickWin,
	"kpi":        TagKPI,
	"risk":       TagRisk,
	"scaling":    TagScaling,
	"tool":       TagTool,
	"capability": TagCapability,
	"partner":    TagPartner,
	"cost tip":   TagCostTip,
}

func (t Tag) String() string {
	switch t {
	case TagQuickWin:
		return "Quick Win"
	case TagKPI:
		return "KPI"
	case TagRisk:
		return "Risk"
	case TagScaling:
		return "Scaling"
	case TagTool:
		return "Tool"
	case TagCapability:
		return "Capability"
	case TagPartner:
		return "Partner"
	case TagCostTip:
		return "Cost Tip"
	default:
		return ""
	}
}

// Icon returns the glyph drawn before an item
func (t Tag) Icon() string {
	switch t {
	case TagQuickWin:
		return "⚡"
	case TagKPI:
		return "📈"
	case TagRisk:
		return "⚠"
	case TagScaling:
		return "↗"
	case TagTool:
		return "🔧"
	case TagCapability:
		return "⚙"
	case TagPartner:
		return "🤝"
	case TagCostTip:
		return "$"
	default:
		return "◦"
	}
}

// qualifiable tags accept a "- <word>" suffix inside the brackets
func (t Tag) qualifiable() bool {
	return t == TagQuickWin || t == TagCapability
}

// Item is a parsed action plan or resource line
type Item struct {
	Tag       Tag
	Qualifier string // e.g. "High" in "[Quick Win - High]"
	Text      string // Line without its prefix
}

var prefixPattern = regexp.MustCompile(`^\[([^\]]+)\]\s*`)
var qualifierPattern = regexp.MustCompile(`^\w+$`)

// ParseItem splits a recognised "[Tag]" or "[Tag - Qualifier]" prefix from
// the text. Anything else is returned unchanged as TagNone.
func ParseItem(raw string) Item {
	m := prefixPattern.FindStringSubmatchIndex(raw)
	if m == nil {
		return Item{Tag: TagNone, Text: raw}
	}
	inner := raw[m[2]:m[3]]

	base, qualifier, hasQualifier := strings.Cut(inner, "-")
	tag, ok := tagNames[strings.ToLower(strings.TrimSpace(base))]
	if !ok {
		return Item{Tag: TagNone, Text: raw}
	}

	qualifier = strings.TrimSpace(qualifier)
	if hasQualifier {
		if !tag.qualifiable() || !qualifierPattern.MatchString(qualifier) {
			return Item{Tag: TagNone, Text: raw}
		}
	}

	return Item{Tag: tag, Qualifier: qualifier, Text: raw[m[1]:]}
}

// ParseItems parses every line
func ParseItems(lines []string) []Item {
	items := make([]Item, len(lines))
	for i, l := range lines {
		items[i] = ParseItem(l)
	}
	return items
}

// Color returns the icon colour. A recognised qualifier overrides the tag
// colour for quick wins and capabilities.
func (it Item) Color() lipgloss.Color {
	theme := config.CurrentTheme

	q := strings.ToLower(it.Qualifier)
	switch it.Tag {
	case TagQuickWin:
		switch q {
		case "high":
			return theme.GetErrorColor()
		case "medium":
			return theme.GetCautionColor()
		case "low":
			return theme.GetNeutralColor()
		}
		return theme.GetWarningColor()
	case TagCapability:
		switch q {
		case "critical", "high":
			return theme.GetErrorColor()
		case "medium":
			return theme.GetCautionColor()
		case "low":
			return theme.GetNeutralColor()
		}
		return theme.GetAccentColor()
	case TagKPI, TagTool:
		return theme.GetInfoColor()
	case TagRisk:
		return theme.GetErrorColor()
	case TagScaling, TagCostTip:
		return theme.GetSuccessColor()
	case TagPartner:
		return theme.GetHighlightColor()
	default:
		return theme.GetMutedColor()
	}
}

// Label is the prefix as shown in plain text output, e.g. "Quick Win - High"
func (it Item) Label() string {
	if it.Tag == TagNone {
		return ""
	}
	if it.Qualifier == "" {
		return it.Tag.String()
	}
	return it.Tag.String() + " - " + it.Qualifier
}
