package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// BreweryType is one of the closed set of type tags the directory uses
type BreweryType string

const (
	TypeMicro      BreweryType = "micro"
	TypeNano       BreweryType = "nano"
	TypeRegional   BreweryType = "regional"
	TypeBrewpub    BreweryType = "brewpub"
	TypeLarge      BreweryType = "large"
	TypePlanning   BreweryType = "planning"
	TypeBar        BreweryType = "bar"
	TypeContract   BreweryType = "contract"
	TypeProprietor BreweryType = "proprietor"
	TypeClosed     BreweryType = "closed"
	TypeTaproom    BreweryType = "taproom"
	TypeBeergarden BreweryType = "beergarden"
)

// BreweryTypes lists every known type in display order
var BreweryTypes = []BreweryType{
	TypeMicro,
	TypeNano,
	TypeRegional,
	TypeBrewpub,
	TypeLarge,
	TypePlanning,
	TypeBar,
	TypeContract,
	TypeProprietor,
	TypeClosed,
	TypeTaproom,
	TypeBeergarden,
}

// IsValid reports whether t belongs to the closed type set
func (t BreweryType) IsValid() bool {
	for _, known := range BreweryTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Brewery is a single record from the directory. Records are never mutated
// after decoding; a new fetch replaces them wholesale.
type Brewery struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	BreweryType   BreweryType `json:"brewery_type"`
	Address1      string      `json:"address_1,omitempty"`
	Address2      string      `json:"address_2,omitempty"`
	Address3      string      `json:"address_3,omitempty"`
	Street        string      `json:"street,omitempty"`
	City          string      `json:"city"`
	StateProvince string      `json:"state_province,omitempty"`
	State         string      `json:"state,omitempty"`
	PostalCode    string      `json:"postal_code,omitempty"`
	Country       string      `json:"country"`
	Latitude      *Coordinate `json:"latitude,omitempty"`
	Longitude     *Coordinate `json:"longitude,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	WebsiteURL    string      `json:"website_url,omitempty"`
}

// StreetAddress prefers the street field and falls back to address_1
func (b Brewery) StreetAddress() string {
	if b.Street != "" {
		return b.Street
	}
	return b.Address1
}

// Region returns state_province, or the legacy state field
func (b Brewery) Region() string {
	if b.StateProvince != "" {
		return b.StateProvince
	}
	return b.State
}

// HasCoordinates reports whether both latitude and longitude are known
func (b Brewery) HasCoordinates() bool {
	return b.Latitude != nil && b.Longitude != nil
}

// Coordinate is a latitude or longitude. The API has shipped these both as
// JSON numbers and as numeric strings, so decoding accepts either.
type Coordinate float64

// UnmarshalJSON implements json.Unmarshaler. null and "" leave c untouched.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	parsed, err := parseCoordinate(data)
	if err != nil || parsed == nil {
		return err
	}
	*c = *parsed
	return nil
}

// parseCoordinate decodes a number, numeric string, null or "". The last two
// yield nil.
func parseCoordinate(data []byte) (*Coordinate, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	raw := strings.TrimSpace(strings.Trim(string(data), `"`))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid coordinate %q: %w", raw, err)
	}
	c := Coordinate(v)
	return &c, nil
}

// UnmarshalJSON decodes a record. Coordinates sent as null or "" stay nil so
// HasCoordinates reports them as unknown.
func (b *Brewery) UnmarshalJSON(data []byte) error {
	type plain Brewery
	aux := struct {
		*plain
		Latitude  json.RawMessage `json:"latitude"`
		Longitude json.RawMessage `json:"longitude"`
	}{plain: (*plain)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if b.Latitude, err = parseCoordinate(aux.Latitude); err != nil {
		return err
	}
	if b.Longitude, err = parseCoordinate(aux.Longitude); err != nil {
		return err
	}
	return nil
}

// String formats the coordinate with the precision the API uses
func (c Coordinate) String() string {
	return strconv.FormatFloat(float64(c), 'f', -1, 64)
}

// Suggestion is one autocomplete hit
type Suggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MetaSummary holds aggregate counts for a filter scope
type MetaSummary struct {
	Total   FlexInt            `json:"total"`
	Page    FlexInt            `json:"page,omitempty"`
	PerPage FlexInt            `json:"per_page,omitempty"`
	ByType  map[string]FlexInt `json:"by_type,omitempty"`
	ByState map[string]FlexInt `json:"by_state,omitempty"`
}

// FlexInt decodes an integer that may arrive quoted
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid integer %s", data)
		}
		num = json.Number(s)
	}
	if num == "" {
		return nil
	}
	v, err := strconv.Atoi(string(num))
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", num, err)
	}
	*n = FlexInt(v)
	return nil
}

// Count is one bucket of an aggregate
type Count struct {
	Key   string
	Value int
}
