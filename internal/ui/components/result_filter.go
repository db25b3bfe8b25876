package components

import (
	"strings"

	"github.com/rebeliceyang/lazybrew/internal/models"
)

// SearchQuery is a parsed quick filter expression
type SearchQuery struct {
	Pattern string      // The search pattern (after removing prefix)
	Negate  bool        // True if query starts with !
	Field   FilterField // Field the pattern applies to; FieldName by default
}

// FilterField is the record field a quick filter matches against
type FilterField string

const (
	FieldName    FilterField = "name"
	FieldType    FilterField = "type"
	FieldCity    FilterField = "city"
	FieldState   FilterField = "state"
	FieldCountry FilterField = "country"
	FieldPostal  FilterField = "postal"
)

// fieldPrefixes maps the short and long prefixes onto fields
var fieldPrefixes = []struct {
	prefix string
	field  FilterField
}{
	{"name:", FieldName},
	{"type:", FieldType},
	{"city:", FieldCity},
	{"state:", FieldState},
	{"country:", FieldCountry},
	{"postal:", FieldPostal},
	{"n:", FieldName},
	{"t:", FieldType},
	{"c:", FieldCity},
	{"s:", FieldState},
	{"co:", FieldCountry},
	{"p:", FieldPostal},
}

// ParseSearchQuery parses a quick filter string
// Examples:
//   - "stone" → {Pattern: "stone", Field: name}
//   - "!t:micro" → {Pattern: "micro", Negate: true, Field: type}
//   - "state:oregon" → {Pattern: "oregon", Field: state}
func ParseSearchQuery(query string) SearchQuery {
	q := SearchQuery{Field: FieldName}

	query = strings.TrimSpace(query)
	if strings.HasPrefix(query, "!") {
		q.Negate = true
		query = query[1:]
	}

	queryLower := strings.ToLower(query)
	for _, p := range fieldPrefixes {
		if strings.HasPrefix(queryLower, p.prefix) {
			q.Field = p.field
			query = query[len(p.prefix):]
			break
		}
	}

	q.Pattern = strings.TrimSpace(query)
	return q
}

// FuzzyMatch performs fuzzy subsequence matching
// Returns whether the pattern matches and the rune positions of matched
// characters. Matching is case-insensitive.
func FuzzyMatch(pattern, target string) (bool, []int) {
	if pattern == "" {
		return true, []int{}
	}

	patternRunes := []rune(strings.ToLower(pattern))
	targetRunes := []rune(strings.ToLower(target))

	positions := make([]int, 0, len(patternRunes))
	patternIdx := 0

	for i := 0; i < len(targetRunes) && patternIdx < len(patternRunes); i++ {
		if targetRunes[i] == patternRunes[patternIdx] {
			positions = append(positions, i)
			patternIdx++
		}
	}

	if patternIdx == len(patternRunes) {
		return true, positions
	}
	return false, nil
}

// fieldValue returns the record text a field filter matches against
func fieldValue(b models.Brewery, field FilterField) string {
	switch field {
	case FieldType:
		return string(b.BreweryType)
	case FieldCity:
		return b.City
	case FieldState:
		return b.Region()
	case FieldCountry:
		return b.Country
	case FieldPostal:
		return b.PostalCode
	default:
		return b.Name
	}
}

// Matches reports whether a record passes the quick filter
func (q SearchQuery) Matches(b models.Brewery) bool {
	matched, _ := FuzzyMatch(q.Pattern, fieldValue(b, q.Field))
	if q.Negate && q.Pattern != "" {
		return !matched
	}
	return matched
}

// FilterBreweries returns the records passing the quick filter, in order.
// The input slice is not modified.
func FilterBreweries(breweries []models.Brewery, q SearchQuery) []models.Brewery {
	if q.Pattern == "" {
		return breweries
	}

	out := make([]models.Brewery, 0, len(breweries))
	for _, b := range breweries {
		if q.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}
