package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rebeliceyang/lazybrew/internal/models"
)

// Builder turns FilterSet models into list endpoint query parameters
type Builder struct {
	validate *validator.Validate
}

// NewBuilder creates a new filter builder
func NewBuilder() *Builder {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("brewery_type", func(fl validator.FieldLevel) bool {
		return models.BreweryType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("sort_option", func(fl validator.FieldLevel) bool {
		return IsSortOption(models.SortOption(fl.Field().String()))
	})
	return &Builder{validate: v}
}

// Validate checks a filter set before it is dispatched
func (b *Builder) Validate(f models.FilterSet) error {
	err := b.validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid filters: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "brewery_type":
		return fmt.Sprintf("unknown brewery type %q", fe.Value())
	case "sort_option":
		return fmt.Sprintf("unsupported sort %q", fe.Value())
	case "lte", "gte":
		return fmt.Sprintf("per_page must be between 1 and %d", models.MaxPerPage)
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// BuildQuery generates list query parameters from a FilterSet. Blank values
// are pruned and per_page is always present.
func (b *Builder) BuildQuery(f models.FilterSet) url.Values {
	q := url.Values{}

	for _, key := range models.FilterKeys {
		if v := strings.TrimSpace(f.Get(key)); v != "" {
			q.Set(string(key), v)
		}
	}

	if f.Sort != models.SortDefault {
		q.Set("sort", string(f.Sort))
	}

	q.Set("per_page", strconv.Itoa(f.EffectivePerPage()))
	return q
}

// BuildMetaQuery generates meta endpoint parameters from a partial filter
// mapping, pruning blank values
func (b *Builder) BuildMetaQuery(params models.MetaParams) url.Values {
	q := url.Values{}
	for key, v := range params {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(string(key), v)
		}
	}
	return q
}

// Preview renders the request a filter set would produce, for display
func (b *Builder) Preview(f models.FilterSet) string {
	return "GET /breweries?" + b.BuildQuery(f).Encode()
}

// IsSortOption reports whether s is one of the supported sort choices
func IsSortOption(s models.SortOption) bool {
	for _, opt := range models.SortOptions {
		if s == opt {
			return true
		}
	}
	return false
}

// NextSortOption cycles forward through the sort choices
func NextSortOption(s models.SortOption) models.SortOption {
	for i, opt := range models.SortOptions {
		if opt == s {
			return models.SortOptions[(i+1)%len(models.SortOptions)]
		}
	}
	return models.SortDefault
}

// PrevSortOption cycles backward through the sort choices
func PrevSortOption(s models.SortOption) models.SortOption {
	n := len(models.SortOptions)
	for i, opt := range models.SortOptions {
		if opt == s {
			return models.SortOptions[(i+n-1)%n]
		}
	}
	return models.SortDefault
}

// NextBreweryType cycles through "" and the closed type set
func NextBreweryType(t string) string {
	if t == "" {
		return string(models.BreweryTypes[0])
	}
	for i, known := range models.BreweryTypes {
		if string(known) == t {
			if i+1 == len(models.BreweryTypes) {
				return ""
			}
			return string(models.BreweryTypes[i+1])
		}
	}
	return ""
}
