// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"fmt"
)

// Kind selects the widget used to choose an option
type Kind int

const (
	KindGrid   Kind = iota // Free choice among cards
	KindSlider             // Ordered scale, one index at a time
)

func (k Kind) String() string {
	if k == KindSlider {
		return "slider"
	}
	return "grid"
}

// Entry is one selectable option
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Category groups the options stored under one state key
type Category struct {
	ID      string // Section id used by the wizard (product, customer, ...)
	Key     string // Canonical state key (product_type, target_customer, ...)
	Title   string
	Prompt  string
	Kind    Kind
	Entries []Entry
}

var products = []Entry{
	{ID: "b2b_enterprise_saas", Title: "Business-to-Business SaaS", Description: "Enterprise software solutions.", Icon: "▣"},
	{ID: "b2c_retail_goods", Title: "Business-to-Consumer Retail", Description: "Direct consumer goods.", Icon: "◈"},
	{ID: "local_service", Title: "Local Service", Description: "Regional physical services.", Icon: "⌂"},
	{ID: "high_end_consulting", Title: "Consulting", Description: "Expert professional advice.", Icon: "♜"},
	{ID: "digital_info_product", Title: "Digital Product", Description: "Online courses and assets.", Icon: "⌘"},
	{ID: "fast_moving_consumer_goods", Title: "Fast-Moving Consumer Goods", Description: "Everyday, non-durable goods sold quickly at low prices.", Icon: "⇶"},
	{ID: "niche_technical_tools", Title: "Niche Technical Tools", Description: "Niche hardware/software.", Icon: "⚙"},
	{ID: "hospitality", Title: "Hospitality", Description: "Tourism and travel.", Icon: "✈"},
	{ID: "subscription_recurring", Title: "Subscription", Description: "Recurring revenue models.", Icon: "↻"},
}

var customers = []Entry{
	{ID: "large_enterprise", Title: "Large Enterprise", Description: "Global corporations and high-revenue organizations.", Icon: "▦"},
	{ID: "small_to_medium_enterprise", Title: "B2B Small-to-Medium Enterprises", Description: "Small to medium businesses looking for efficiency.", Icon: "▤"},
	{ID: "gen_z", Title: "Gen Z", Description: "Digital natives focused on authenticity and ethics.", Icon: "✦"},
	{ID: "millenial", Title: "Millennials", Description: "Tech-savvy professionals valuing convenience.", Icon: "⌨"},
	{ID: "senior", Title: "Seniors", Description: "Quality-focused traditionalists and retirees.", Icon: "☂"},
	{ID: "local_community", Title: "Local Community", Description: "Hyper-local residents and neighborhood loyalists.", Icon: "⌂"},
	{ID: "niche_industry", Title: "Niche Industry", Description: "Specialized experts and specific hobbyists.", Icon: "⚗"},
	{ID: "budget_shopper", Title: "Budget Shopper", Description: "Price-sensitive customers looking for value.", Icon: "%"},
	{ID: "luxury", Title: "Luxury", Description: "High-net-worth individuals seeking exclusivity.", Icon: "◆"},
}

var goals = []Entry{
	{ID: "brand_awareness", Title: "Brand Awareness", Description: "Increase market visibility and build brand recognition.", Icon: "◉"},
	{ID: "immediate_lead_generation", Title: "Immediate Lead Generation", Description: "Capture new prospects and immediate sales inquiries.", Icon: "⊕"},
	{ID: "customer_retention_loyalty", Title: "Customer Retention & Loyalty", Description: "Strengthen relationships with existing customers.", Icon: "♥"},
}

var timeHorizons = []Entry{
	{ID: "short_term", Title: "Short Term", Description: "1-3 Months", Icon: "·"},
	{ID: "medium_term", Title: "Medium Term", Description: "3-6 Months", Icon: "•"},
	{ID: "long_term", Title: "Long Term", Description: "6+ Months", Icon: "●"},
}

var capabilities = []Entry{
	{ID: "low_capability", Title: "Low Capability", Description: "Limited resources; 1-2 posts per week.", Icon: "▁"},
	{ID: "medium_capability", Title: "Medium Capability", Description: "Steady production; daily updates possible.", Icon: "▄"},
	{ID: "high_capability", Title: "High Capability", Description: "Full team; high-frequency content.", Icon: "█"},
}

var salesStructures = []Entry{
	{ID: "automated_ecommerce", Title: "Automated E-commerce", Description: "Transactions occur without human intervention via online storefronts.", Icon: "⚡"},
	{ID: "dedicated_sales_team", Title: "Sales Team", Description: "A professional team manages outreach, qualification and closing.", Icon: "☰"},
	{ID: "owner_driven", Title: "Owner Driven", Description: "The business owner personally handles high-stakes sales.", Icon: "♚"},
}

var kpis = []Entry{
	{ID: "conversion_rate", Title: "Conversion Rate", Description: "Turn visitors into active customers.", Icon: "↗"},
	{ID: "customer_lifetime_value", Title: "CLV", Description: "Maximize the total revenue from each customer relationship.", Icon: "∞"},
	{ID: "organic_traffic_impressions", Title: "Organic Traffic", Description: "Increase brand visibility and top-of-funnel reach.", Icon: "⇡"},
	{ID: "cost_per_acquisition", Title: "Lower CPA", Description: "Optimize spending to acquire customers more efficiently.", Icon: "$"},
	{ID: "sales_qualified_leads", Title: "SQL Volume", Description: "Generate more high-intent leads for the sales team.", Icon: "⧩"},
}

// categories is the fixed section order of the quiz
var categories = []Category{
	{ID: "product", Key: "product_type", Title: "Product Type", Prompt: "What do you sell?", Kind: KindGrid, Entries: products},
	{ID: "customer", Key: "target_customer", Title: "Target Customer", Prompt: "Who buys it?", Kind: KindGrid, Entries: customers},
	{ID: "goal", Key: "primary_goal", Title: "Primary Goal", Prompt: "What should marketing achieve first?", Kind: KindGrid, Entries: goals},
	{ID: "time_horizon", Key: "time_horizon", Title: "Time Horizon", Prompt: "How soon do you need results?", Kind: KindSlider, Entries: timeHorizons},
	{ID: "content_capability", Key: "content_capability", Title: "Content Capability", Prompt: "How much content can you produce?", Kind: KindSlider, Entries: capabilities},
	{ID: "sales", Key: "sales_structure", Title: "Sales Structure", Prompt: "How are deals closed?", Kind: KindGrid, Entries: salesStructures},
	{ID: "kpi", Key: "priority_kpi", Title: "Priority KPI", Prompt: "Which number matters most?", Kind: KindGrid, Entries: kpis},
}

// Categories returns the categories in quiz order. The slice is a copy.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ByID returns the category with the given section id
func ByID(id string) (Category, error) {
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("unknown category: %s", id)
}

// ByKey returns the category stored under the given state key
func ByKey(key string) (Category, error) {
	for _, c := range categories {
		if c.Key == key {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("no category for key: %s", key)
}

// Lookup finds an entry by id within a category
func (c Category) Lookup(id string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// IndexOf returns the position of id in the category, or -1
func (c Category) IndexOf(id string) int {
	for i, e := range c.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Find searches every category for an entry id
func Find(id string) (Entry, bool) {
	for _, c := range categories {
		if e, ok := c.Lookup(id); ok {
			return e, true
		}
	}
	return Entry{}, false
}

// Columns returns the grid width used to lay out a category.
// Sizes are 3, 5 or 9; everything is laid out three across.
func (c Category) Columns() int {
	if c.Kind == KindSlider {
		return len(c.Entries)
	}
	if len(c.Entries) < 3 {
		return len(c.Entries)
	}
	return 3
}
