package models

// DefaultPerPage is the page size used when none is set
const DefaultPerPage = 10

// MaxPerPage is the largest page the directory serves
const MaxPerPage = 200

// RandomQuery marks the canonical query while random mode is active
const RandomQuery = "random"

// SortOption is a field:direction pair understood by the list endpoint
type SortOption string

const (
	SortDefault     SortOption = ""
	SortNameAsc     SortOption = "name:asc"
	SortNameDesc    SortOption = "name:desc"
	SortCityAsc     SortOption = "city:asc"
	SortCityDesc    SortOption = "city:desc"
	SortStateAsc    SortOption = "state:asc"
	SortStateDesc   SortOption = "state:desc"
	SortTypeAsc     SortOption = "type:asc"
	SortTypeDesc    SortOption = "type:desc"
	SortPostalAsc   SortOption = "postal:asc"
	SortCountryAsc  SortOption = "country:asc"
	SortCountryDesc SortOption = "country:desc"
)

// SortOptions lists the sort choices in the order the filter form cycles them
var SortOptions = []SortOption{
	SortDefault,
	SortNameAsc,
	SortNameDesc,
	SortCityAsc,
	SortCityDesc,
	SortStateAsc,
	SortStateDesc,
	SortTypeAsc,
	SortTypeDesc,
	SortPostalAsc,
	SortCountryAsc,
	SortCountryDesc,
}

// FilterKey names one structured filter parameter
type FilterKey string

const (
	ByType    FilterKey = "by_type"
	ByState   FilterKey = "by_state"
	ByCity    FilterKey = "by_city"
	ByPostal  FilterKey = "by_postal"
	ByName    FilterKey = "by_name"
	ByCountry FilterKey = "by_country"
)

// FilterKeys lists the structured filters in form order
var FilterKeys = []FilterKey{ByType, ByState, ByCity, ByPostal, ByName, ByCountry}

// FilterSet is the structured list query: field constraints plus sort and
// page size. Empty strings mean "not set".
type FilterSet struct {
	ByType    string     `json:"by_type,omitempty" validate:"omitempty,brewery_type"`
	ByState   string     `json:"by_state,omitempty" validate:"omitempty,max=64"`
	ByCity    string     `json:"by_city,omitempty" validate:"omitempty,max=64"`
	ByPostal  string     `json:"by_postal,omitempty" validate:"omitempty,max=16"`
	ByName    string     `json:"by_name,omitempty" validate:"omitempty,max=128"`
	ByCountry string     `json:"by_country,omitempty" validate:"omitempty,max=64"`
	Sort      SortOption `json:"sort,omitempty" validate:"omitempty,sort_option"`
	PerPage   int        `json:"per_page,omitempty" validate:"gte=0,lte=200"`
}

// DefaultFilterSet returns the filter set a session starts with
func DefaultFilterSet() FilterSet {
	return FilterSet{PerPage: DefaultPerPage}
}

// Get returns the value of a structured filter
func (f FilterSet) Get(key FilterKey) string {
	switch key {
	case ByType:
		return f.ByType
	case ByState:
		return f.ByState
	case ByCity:
		return f.ByCity
	case ByPostal:
		return f.ByPostal
	case ByName:
		return f.ByName
	case ByCountry:
		return f.ByCountry
	}
	return ""
}

// With returns a copy with one structured filter replaced
func (f FilterSet) With(key FilterKey, value string) FilterSet {
	switch key {
	case ByType:
		f.ByType = value
	case ByState:
		f.ByState = value
	case ByCity:
		f.ByCity = value
	case ByPostal:
		f.ByPostal = value
	case ByName:
		f.ByName = value
	case ByCountry:
		f.ByCountry = value
	}
	return f
}

// EffectivePerPage returns the page size that will be sent
func (f FilterSet) EffectivePerPage() int {
	if f.PerPage <= 0 {
		return DefaultPerPage
	}
	return f.PerPage
}

// HasConstraints reports whether any structured field filter is set
func (f FilterSet) HasConstraints() bool {
	for _, key := range FilterKeys {
		if f.Get(key) != "" {
			return true
		}
	}
	return false
}

// QueryState is the canonical "what is being shown" pair
type QueryState struct {
	Query   string
	Filters FilterSet
}

// Mode reports which fetch strategy the query state selects
func (q QueryState) Mode() QueryMode {
	switch {
	case q.Query == RandomQuery:
		return ModeRandom
	case q.Query != "":
		return ModeSearch
	default:
		return ModeBrowse
	}
}

// QueryMode identifies the fetch strategy behind the current result set
type QueryMode int

const (
	ModeBrowse QueryMode = iota
	ModeSearch
	ModeRandom
)

func (m QueryMode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeRandom:
		return "random"
	default:
		return "browse"
	}
}

// MetaParams is the partial filter mapping accepted by the meta endpoint
type MetaParams map[FilterKey]string
