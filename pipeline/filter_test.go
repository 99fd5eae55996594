package pipeline

import (
	"reflect"
	"testing"

	"github.com/bdqkit/bdqkit/catalog"
	"github.com/bdqkit/bdqkit/terms"
)

func testDataset(t *testing.T, header []string, rows [][]string) *Dataset {
	t.Helper()
	ds, err := NewDataset("test-dataset", header[0], header, rows)
	if err != nil {
		t.Fatalf("NewDataset() failed: %v", err)
	}
	return ds
}

func TestFilterCountryScenario(t *testing.T) {
	// One test requiring dwc:country; dataset has mixed-case column
	// "Country" and one empty value.
	tests := []*catalog.TestDefinition{
		{ID: "VALIDATION_COUNTRY_FOUND", ActedUpon: []string{"dwc:country"}},
	}
	ds := testDataset(t,
		[]string{"occurrenceID", "Country"},
		[][]string{
			{"occ-1", "Peru"},
			{"occ-2", ""},
			{"occ-3", "  "},
			{"occ-4", "Chile"},
		})

	apps := Filter(tests, terms.NewResolver(), ds, nil)
	if len(apps) != 1 {
		t.Fatalf("Filter() returned %d applicable tests, want 1", len(apps))
	}

	app := apps[0]
	if !app.Decision.Applicable {
		t.Error("test should be applicable")
	}
	if app.Decision.Matched["dwc:country"] != "country" {
		t.Errorf("matched column = %q, want country", app.Decision.Matched["dwc:country"])
	}
	if want := []int{0, 3}; !reflect.DeepEqual(app.EligibleRecords, want) {
		t.Errorf("EligibleRecords = %v, want %v (empty and blank values ineligible)", app.EligibleRecords, want)
	}
}

func TestFilterNotApplicableWhenTermMissing(t *testing.T) {
	tests := []*catalog.TestDefinition{
		{ID: "NEEDS_BOTH", ActedUpon: []string{"dwc:country", "dwc:eventDate"}},
	}
	ds := testDataset(t,
		[]string{"occurrenceID", "Country"},
		[][]string{{"occ-1", "Peru"}})

	apps := Filter(tests, terms.NewResolver(), ds, nil)
	if len(apps) != 0 {
		t.Fatalf("Filter() returned %d applicable tests, want 0", len(apps))
	}

	d := Decide(tests[0], terms.NewResolver(), ds.Columns)
	if d.Applicable {
		t.Error("Decide() should mark the test not applicable")
	}
	if len(d.Missing) != 1 || d.Missing[0] != "dwc:eventDate" {
		t.Errorf("Missing = %v, want [dwc:eventDate]", d.Missing)
	}
}

func TestFilterConsultedDoesNotGate(t *testing.T) {
	tests := []*catalog.TestDefinition{
		{
			ID:        "WITH_CONSULTED",
			ActedUpon: []string{"dwc:country"},
			Consulted: []string{"dwc:countryCode", "dwc:stateProvince"},
		},
	}
	ds := testDataset(t,
		[]string{"occurrenceID", "Country", "countrycode"},
		[][]string{{"occ-1", "Peru", "PE"}})

	apps := Filter(tests, terms.NewResolver(), ds, nil)
	if len(apps) != 1 {
		t.Fatal("test should be applicable despite an unresolved consulted term")
	}

	d := apps[0].Decision
	if d.ConsultedMatched["dwc:countryCode"] != "countrycode" {
		t.Errorf("consulted match = %q, want countrycode", d.ConsultedMatched["dwc:countryCode"])
	}
	if _, ok := d.ConsultedMatched["dwc:stateProvince"]; ok {
		t.Error("stateProvince should not have matched")
	}
}

func TestFilterZeroActedUponAllEligible(t *testing.T) {
	tests := []*catalog.TestDefinition{
		{ID: "NO_DEPS", ActedUpon: []string{}},
	}
	ds := testDataset(t,
		[]string{"occurrenceID"},
		[][]string{{"occ-1"}, {"occ-2"}, {"occ-3"}})

	apps := Filter(tests, terms.NewResolver(), ds, nil)
	if len(apps) != 1 {
		t.Fatal("a test with no data dependency is always applicable")
	}
	if want := []int{0, 1, 2}; !reflect.DeepEqual(apps[0].EligibleRecords, want) {
		t.Errorf("EligibleRecords = %v, want all records", apps[0].EligibleRecords)
	}
}

func TestFilterMonotonicUnderAddedColumns(t *testing.T) {
	tests := []*catalog.TestDefinition{
		{ID: "T", ActedUpon: []string{"dwc:country"}},
	}
	resolver := terms.NewResolver()

	base := testDataset(t,
		[]string{"occurrenceID", "Country"},
		[][]string{{"occ-1", "Peru"}})
	wider := testDataset(t,
		[]string{"occurrenceID", "Country", "unrelated_a", "unrelated_b"},
		[][]string{{"occ-1", "Peru", "x", "y"}})

	if len(Filter(tests, resolver, base, nil)) != 1 {
		t.Fatal("test should be applicable on the base dataset")
	}
	if len(Filter(tests, resolver, wider, nil)) != 1 {
		t.Error("adding unrelated columns must not revoke applicability")
	}
}

func TestFilterIdempotent(t *testing.T) {
	tests := []*catalog.TestDefinition{
		{ID: "A", ActedUpon: []string{"dwc:country"}},
		{ID: "B", ActedUpon: []string{"dwc:scientificName"}},
		{ID: "C", ActedUpon: []string{"dwc:decimalLatitude", "dwc:decimalLongitude"}},
	}
	resolver := terms.NewResolver()
	ds := testDataset(t,
		[]string{"occurrenceID", "Country", "scientific_name"},
		[][]string{
			{"occ-1", "Peru", "Puma concolor"},
			{"occ-2", "", "Felis catus"},
		})

	first := Filter(tests, resolver, ds, nil)
	second := Filter(tests, resolver, ds, nil)

	if !reflect.DeepEqual(first, second) {
		t.Error("Filter() on identical inputs must yield identical output")
	}
}

func TestFilterNoMappableColumns(t *testing.T) {
	tests := []*catalog.TestDefinition{
		{ID: "A", ActedUpon: []string{"dwc:country"}},
		{ID: "B", ActedUpon: []string{"dwc:eventDate"}},
	}
	ds := testDataset(t,
		[]string{"col_x", "col_y"},
		[][]string{{"1", "2"}})

	apps := Filter(tests, terms.NewResolver(), ds, nil)
	if len(apps) != 0 {
		t.Errorf("Filter() = %d applicable tests, want empty set (not an error)", len(apps))
	}
}

func TestFilterRespectsAllowedMask(t *testing.T) {
	tests := []*catalog.TestDefinition{
		{ID: "T", ActedUpon: []string{"dwc:country"}},
	}
	ds := testDataset(t,
		[]string{"occurrenceID", "Country"},
		[][]string{
			{"occ-1", "Peru"},
			{"occ-2", "Chile"},
			{"occ-3", "Bolivia"},
		})

	apps := Filter(tests, terms.NewResolver(), ds, []bool{true, false, true})
	if want := []int{0, 2}; !reflect.DeepEqual(apps[0].EligibleRecords, want) {
		t.Errorf("EligibleRecords = %v, want %v", apps[0].EligibleRecords, want)
	}
}

func TestNewDatasetIdentifierColumnRequired(t *testing.T) {
	_, err := NewDataset("d", "occurrenceID", []string{"country"}, nil)
	if err == nil {
		t.Error("NewDataset() should fail when the identifier column is absent")
	}
}

func TestNewDatasetPadsShortRows(t *testing.T) {
	ds := testDataset(t,
		[]string{"occurrenceID", "Country", "Locality"},
		[][]string{{"occ-1", "Peru"}})

	rec := ds.Records[0]
	if v, ok := rec.Fields["locality"]; !ok || v != "" {
		t.Errorf("short row should pad locality with empty string, got %q, %v", v, ok)
	}
}
