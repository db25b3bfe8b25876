package components

import (
	"testing"

	"github.com/rebeliceyang/lazybrew/internal/models"
)

func TestParseSearchQuery_Simple(t *testing.T) {
	q := ParseSearchQuery("stone")

	if q.Pattern != "stone" {
		t.Errorf("expected pattern 'stone', got '%s'", q.Pattern)
	}
	if q.Negate {
		t.Error("expected Negate=false")
	}
	if q.Field != FieldName {
		t.Errorf("expected name field, got '%s'", q.Field)
	}
}

func TestParseSearchQuery_Prefixes(t *testing.T) {
	tests := []struct {
		input   string
		field   FilterField
		pattern string
		negate  bool
	}{
		{"t:micro", FieldType, "micro", false},
		{"type:brewpub", FieldType, "brewpub", false},
		{"c:bend", FieldCity, "bend", false},
		{"city:Bend", FieldCity, "Bend", false},
		{"s:oregon", FieldState, "oregon", false},
		{"STATE:ohio", FieldState, "ohio", false},
		{"co:ireland", FieldCountry, "ireland", false},
		{"country:ireland", FieldCountry, "ireland", false},
		{"p:977", FieldPostal, "977", false},
		{"!t:micro", FieldType, "micro", true},
		{"!dog", FieldName, "dog", true},
		{"!t:", FieldType, "", true},
		{"  n: fish ", FieldName, "fish", false},
	}

	for _, tt := range tests {
		q := ParseSearchQuery(tt.input)
		if q.Field != tt.field || q.Pattern != tt.pattern || q.Negate != tt.negate {
			t.Errorf("ParseSearchQuery(%q) = %+v, want field=%s pattern=%q negate=%v",
				tt.input, q, tt.field, tt.pattern, tt.negate)
		}
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		pattern   string
		target    string
		matches   bool
		positions []int
	}{
		{"", "anything", true, []int{}},
		{"dfh", "Dogfish Head", true, []int{0, 3, 6}},
		{"DOG", "dogfish", true, []int{0, 1, 2}},
		{"xyz", "dogfish", false, nil},
		{"bräu", "Weihenstephan Bräuhaus", true, []int{14, 15, 16, 17}},
	}

	for _, tt := range tests {
		matches, positions := FuzzyMatch(tt.pattern, tt.target)
		if matches != tt.matches {
			t.Errorf("FuzzyMatch(%q, %q) matches = %v, want %v", tt.pattern, tt.target, matches, tt.matches)
			continue
		}
		if len(positions) != len(tt.positions) {
			t.Errorf("FuzzyMatch(%q, %q) positions = %v, want %v", tt.pattern, tt.target, positions, tt.positions)
			continue
		}
		for i := range positions {
			if positions[i] != tt.positions[i] {
				t.Errorf("FuzzyMatch(%q, %q) positions = %v, want %v", tt.pattern, tt.target, positions, tt.positions)
				break
			}
		}
	}
}

func quickFilterFixture() []models.Brewery {
	return []models.Brewery{
		{ID: "1", Name: "Dogfish Head", BreweryType: models.TypeRegional, City: "Milton", StateProvince: "Delaware", Country: "United States"},
		{ID: "2", Name: "Deschutes", BreweryType: models.TypeRegional, City: "Bend", StateProvince: "Oregon", Country: "United States"},
		{ID: "3", Name: "Tiny Taps", BreweryType: models.TypeMicro, City: "Bend", State: "Oregon", Country: "United States"},
		{ID: "4", Name: "Guinness", BreweryType: models.TypeLarge, City: "Dublin", Country: "Ireland"},
	}
}

func ids(breweries []models.Brewery) []string {
	out := make([]string, len(breweries))
	for i, b := range breweries {
		out[i] = b.ID
	}
	return out
}

func TestFilterBreweries(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3", "4"}},
		{"dog", []string{"1"}},
		{"t:regional", []string{"1", "2"}},
		{"!t:regional", []string{"3", "4"}},
		{"c:bend", []string{"2", "3"}},
		{"s:oregon", []string{"2", "3"}},
		{"co:ireland", []string{"4"}},
		{"!guin", []string{"1", "2", "3"}},
		{"!t:", []string{"1", "2", "3", "4"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		got := ids(FilterBreweries(quickFilterFixture(), ParseSearchQuery(tt.query)))
		if len(got) != len(tt.want) {
			t.Errorf("query %q: got %v, want %v", tt.query, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("query %q: got %v, want %v", tt.query, got, tt.want)
				break
			}
		}
	}
}
