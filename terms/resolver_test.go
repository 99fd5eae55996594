package terms

import "testing"

func TestNewColumnSetLowercasesAndTrims(t *testing.T) {
	cs := NewColumnSet([]string{" Country ", "decimalLatitude", "", "  "})

	if len(cs) != 2 {
		t.Fatalf("NewColumnSet() produced %d entries, want 2", len(cs))
	}
	if !cs.Contains("country") {
		t.Error("ColumnSet should contain 'country'")
	}
	if !cs.Contains("decimallatitude") {
		t.Error("ColumnSet should contain 'decimallatitude'")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"dwc:country", "country"},
		{"dwc:decimalLatitude", "decimallatitude"},
		{"dc:type", "type"},
		{"country", "country"},
		{"  dwc:Country  ", "country"},
		{"bdq:annotated:eventDate", "eventdate"},
	}

	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveCaseInsensitiveMatch(t *testing.T) {
	r := NewResolver()
	cs := NewColumnSet([]string{"Country", "Locality"})

	col, ok := r.Resolve("dwc:country", cs)
	if !ok {
		t.Fatal("Resolve() should match 'Country' for dwc:country")
	}
	if col != "country" {
		t.Errorf("Resolve() = %q, want %q", col, "country")
	}
}

func TestResolvePreferenceOrder(t *testing.T) {
	r := NewResolver()

	// Both the canonical spelling and a shorthand are present; the first
	// alias in declared order wins.
	cs := NewColumnSet([]string{"lat", "decimalLatitude"})
	col, ok := r.Resolve("dwc:decimalLatitude", cs)
	if !ok {
		t.Fatal("Resolve() should match")
	}
	if col != "decimallatitude" {
		t.Errorf("Resolve() = %q, want canonical alias %q", col, "decimallatitude")
	}

	// Only a later alias is present.
	cs = NewColumnSet([]string{"lat", "other"})
	col, ok = r.Resolve("dwc:decimalLatitude", cs)
	if !ok {
		t.Fatal("Resolve() should match shorthand alias")
	}
	if col != "lat" {
		t.Errorf("Resolve() = %q, want %q", col, "lat")
	}
}

func TestResolveNoMatch(t *testing.T) {
	r := NewResolver()
	cs := NewColumnSet([]string{"some_column", "another"})

	if col, ok := r.Resolve("dwc:country", cs); ok {
		t.Errorf("Resolve() = %q, want no match", col)
	}
}

func TestResolveUnknownIdentifierDirectFallback(t *testing.T) {
	r := NewResolver()

	// An identifier absent from the alias table resolves against its own
	// normalized name.
	cs := NewColumnSet([]string{"customField"})
	col, ok := r.Resolve("ns:customField", cs)
	if !ok {
		t.Fatal("Resolve() should fall back to the bare identifier")
	}
	if col != "customfield" {
		t.Errorf("Resolve() = %q, want %q", col, "customfield")
	}

	// Unknown identifier, no matching column: no match, no panic.
	if _, ok := r.Resolve("ns:missingField", cs); ok {
		t.Error("Resolve() should return no match for an absent unknown identifier")
	}
}

func TestWithAliases(t *testing.T) {
	base := NewResolver()
	extended := base.WithAliases(map[string][]string{
		"dwc:country":    {"nation", "Country"},
		"custom:habitat": {"habitat_type"},
	})

	cs := NewColumnSet([]string{"nation", "habitat_type"})

	// Override applies to the extended resolver.
	col, ok := extended.Resolve("dwc:country", cs)
	if !ok || col != "nation" {
		t.Errorf("extended Resolve(country) = %q, %v; want nation, true", col, ok)
	}
	col, ok = extended.Resolve("custom:habitat", cs)
	if !ok || col != "habitat_type" {
		t.Errorf("extended Resolve(habitat) = %q, %v; want habitat_type, true", col, ok)
	}

	// The base resolver is unchanged.
	if _, ok := base.Resolve("dwc:country", cs); ok {
		t.Error("base resolver should not see the extended alias")
	}
}

func TestCanonicalAliasesAreNormalized(t *testing.T) {
	for id, aliases := range canonicalAliases {
		if Normalize(id) != id {
			t.Errorf("alias key %q is not normalized", id)
		}
		if len(aliases) == 0 {
			t.Errorf("alias key %q has an empty candidate list", id)
		}
		for _, a := range aliases {
			if a == "" {
				t.Errorf("alias key %q has an empty candidate", id)
			}
		}
	}
}
