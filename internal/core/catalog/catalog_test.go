package catalog

import "testing"

func TestLookupIsCaseAndSeparatorInsensitive(t *testing.T) {
	c := New()

	tests := []struct {
		name    string
		cuisine string
		found   bool
	}{
		{name: "exact", cuisine: "south indian", found: true},
		{name: "mixed_case", cuisine: "South Indian", found: true},
		{name: "hyphenated", cuisine: "North-Indian", found: true},
		{name: "underscored", cuisine: "north_indian", found: true},
		{name: "extra_spaces", cuisine: "  gujarati  ", found: true},
		{name: "unknown", cuisine: "martian", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := c.Lookup(tt.cuisine)
			if ok != tt.found {
				t.Errorf("Lookup(%q) found=%v, want %v", tt.cuisine, ok, tt.found)
			}
		})
	}
}

func TestUnionPreservesOrderAndDeduplicates(t *testing.T) {
	c := &Catalog{cuisines: map[string]DishLists{
		"first": {
			Breakfast:   []string{"A", "B"},
			LunchDinner: []string{"C"},
			Snacks:      []string{"D"},
		},
		"second": {
			Breakfast:   []string{"B", "E"},
			LunchDinner: []string{"A", "F"},
		},
	}}

	got := c.Union([]string{"first", "second"})
	want := []string{"A", "B", "C", "D", "E", "F"}

	if len(got) != len(want) {
		t.Fatalf("Union returned %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Union[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnionSkipsUnknownCuisines(t *testing.T) {
	c := New()

	if got := c.Union([]string{"atlantean"}); len(got) != 0 {
		t.Errorf("Union of unknown cuisine = %v, want empty", got)
	}

	withKnown := c.Union([]string{"atlantean", "maharashtrian"})
	if len(withKnown) == 0 {
		t.Error("Union with one known cuisine should not be empty")
	}
}

func TestBuiltinCuisinesHaveMealCoverage(t *testing.T) {
	c := New()

	for name := range builtinCuisines {
		lists, ok := c.Lookup(name)
		if !ok {
			t.Fatalf("built-in cuisine %q not found", name)
		}

		if len(lists.Breakfast) == 0 || len(lists.LunchDinner) == 0 {
			t.Errorf("cuisine %q must provide breakfast and lunch/dinner dishes", name)
		}
	}
}
