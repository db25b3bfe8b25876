package filter

import (
	"testing"

	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_PrunesEmptyValues(t *testing.T) {
	b := NewBuilder()

	tests := []struct {
		name    string
		filters models.FilterSet
		want    map[string]string
		absent  []string
	}{
		{
			name:    "zero value still sends per_page",
			filters: models.FilterSet{},
			want:    map[string]string{"per_page": "10"},
			absent:  []string{"by_type", "by_city", "sort"},
		},
		{
			name:    "blank strings are not set",
			filters: models.FilterSet{ByType: "", ByCity: "   ", ByState: "oregon", PerPage: 20},
			want:    map[string]string{"by_state": "oregon", "per_page": "20"},
			absent:  []string{"by_type", "by_city"},
		},
		{
			name: "every field",
			filters: models.FilterSet{
				ByType: "micro", ByState: "ohio", ByCity: "dayton", ByPostal: "45402",
				ByName: "toxic", ByCountry: "united states", Sort: models.SortNameDesc, PerPage: 50,
			},
			want: map[string]string{
				"by_type": "micro", "by_state": "ohio", "by_city": "dayton", "by_postal": "45402",
				"by_name": "toxic", "by_country": "united states", "sort": "name:desc", "per_page": "50",
			},
		},
		{
			name:    "negative page size falls back to default",
			filters: models.FilterSet{PerPage: -3},
			want:    map[string]string{"per_page": "10"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := b.BuildQuery(tc.filters)
			for k, v := range tc.want {
				assert.Equal(t, v, q.Get(k), "param %s", k)
			}
			for _, k := range tc.absent {
				assert.False(t, q.Has(k), "param %s should be pruned", k)
			}
			assert.Len(t, q, len(tc.want))
		})
	}
}

func TestBuildMetaQuery(t *testing.T) {
	b := NewBuilder()

	q := b.BuildMetaQuery(models.MetaParams{models.ByName: "dog", models.ByType: ""})
	assert.Equal(t, "dog", q.Get("by_name"))
	assert.False(t, q.Has("by_type"))

	assert.Empty(t, b.BuildMetaQuery(nil))
}

func TestValidate(t *testing.T) {
	b := NewBuilder()

	require.NoError(t, b.Validate(models.DefaultFilterSet()))
	require.NoError(t, b.Validate(models.FilterSet{ByType: "brewpub", Sort: models.SortCityAsc, PerPage: 200}))

	err := b.Validate(models.FilterSet{ByType: "gigantic"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown brewery type")

	err = b.Validate(models.FilterSet{PerPage: 500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "per_page")

	err = b.Validate(models.FilterSet{Sort: "rating:asc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported sort")
}

func TestPreview(t *testing.T) {
	b := NewBuilder()
	got := b.Preview(models.FilterSet{ByType: "micro", PerPage: 20})
	assert.Equal(t, "GET /breweries?by_type=micro&per_page=20", got)
}

func TestCycling(t *testing.T) {
	assert.Equal(t, "micro", NextBreweryType(""))
	assert.Equal(t, "nano", NextBreweryType("micro"))
	assert.Equal(t, "", NextBreweryType(string(models.TypeBeergarden)))
	assert.Equal(t, "", NextBreweryType("bogus"))

	assert.Equal(t, models.SortNameAsc, NextSortOption(models.SortDefault))
	assert.Equal(t, models.SortDefault, NextSortOption(models.SortCountryDesc))
	assert.Equal(t, models.SortCountryDesc, PrevSortOption(models.SortDefault))
	assert.Equal(t, models.SortNameAsc, PrevSortOption(models.SortNameDesc))
}
