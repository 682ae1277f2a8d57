// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"testing"
)

func TestCategories_KeyMapping(t *testing.T) {
	want := map[string]string{
		"product":            "product_type",
		"customer":           "target_customer",
		"goal":               "primary_goal",
		"time_horizon":       "time_horizon",
		"content_capability": "content_capability",
		"sales":              "sales_structure",
		"kpi":                "priority_kpi",
	}

	for id, key := range want {
		c, err := ByID(id)
		if err != nil {
			t.Errorf("ByID(%q): %v", id, err)
			continue
		}
		if c.Key != key {
			t.Errorf("ByID(%q).Key = %q, want %q", id, c.Key, key)
		}
		if back, err := ByKey(key); err != nil || back.ID != id {
			t.Errorf("ByKey(%q) = %q, %v; want %q", key, back.ID, err, id)
		}
	}
}

func TestCategories_Order(t *testing.T) {
	wantOrder := []string{"product_type", "target_customer", "primary_goal", "time_horizon", "content_capability", "sales_structure", "priority_kpi"}
	cats := Categories()
	if len(cats) != len(wantOrder) {
		t.Fatalf("expected %d categories, got %d", len(wantOrder), len(cats))
	}
	for i, c := range cats {
		if c.Key != wantOrder[i] {
			t.Errorf("category %d key = %q, want %q", i, c.Key, wantOrder[i])
		}
	}
}

func TestCategories_Sizes(t *testing.T) {
	for _, c := range Categories() {
		n := len(c.Entries)
		if n != 3 && n != 5 && n != 9 {
			t.Errorf("category %s has %d entries, expected 3, 5 or 9", c.ID, n)
		}
	}
}

func TestCategories_SliderKinds(t *testing.T) {
	for _, c := range Categories() {
		isOrdinal := c.Key == "time_horizon" || c.Key == "content_capability"
		if isOrdinal && c.Kind != KindSlider {
			t.Errorf("%s should be a slider", c.Key)
		}
		if !isOrdinal && c.Kind != KindGrid {
			t.Errorf("%s should be a grid", c.Key)
		}
	}
}

func TestCategories_UniqueIDs(t *testing.T) {
	for _, c := range Categories() {
		seen := make(map[string]bool)
		for _, e := range c.Entries {
			if seen[e.ID] {
				t.Errorf("duplicate id %s in %s", e.ID, c.ID)
			}
			seen[e.ID] = true
		}
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	cats := Categories()
	cats[0].Key = "mutated"
	if Categories()[0].Key != "product_type" {
		t.Error("Categories() should return a copy")
	}
}

func TestLookupAndIndex(t *testing.T) {
	c, err := ByKey("time_horizon")
	if err != nil {
		t.Fatal(err)
	}
	if c.IndexOf("medium_term") != 1 {
		t.Errorf("IndexOf(medium_term) = %d, want 1", c.IndexOf("medium_term"))
	}
	if c.IndexOf("forever") != -1 {
		t.Error("IndexOf should return -1 for unknown ids")
	}
	if _, ok := c.Lookup("long_term"); !ok {
		t.Error("Lookup(long_term) should succeed")
	}
	if e, ok := Find("conversion_rate"); !ok || e.Title != "Conversion Rate" {
		t.Errorf("Find(conversion_rate) = %+v, %v", e, ok)
	}
	if _, err := ByID("nope"); err == nil {
		t.Error("ByID should reject unknown ids")
	}
}
