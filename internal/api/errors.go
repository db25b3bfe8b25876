package api

import (
	"errors"
	"fmt"
)

// ErrRateLimited is matched by errors.Is on every RateLimitError
var ErrRateLimited = errors.New("Rate limit nearly exceeded")

// ErrEmptyRandom is returned when the random endpoint yields no record
var ErrEmptyRandom = errors.New("no brewery returned")

// RateLimitError reports that the guard rejected a response
type RateLimitError struct {
	Remaining int
}

func (e *RateLimitError) Error() string {
	return ErrRateLimited.Error()
}

// Is lets errors.Is match ErrRateLimited
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// StatusError reports a non-2xx response
type StatusError struct {
	Op         Operation
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error %s: %d", e.Op.verb(), e.StatusCode)
}

// Operation names one endpoint call for errors and logs
type Operation string

const (
	OpGet          Operation = "get"
	OpList         Operation = "list"
	OpRandom       Operation = "random"
	OpSearch       Operation = "search"
	OpAutocomplete Operation = "autocomplete"
	OpMeta         Operation = "meta"
)

func (op Operation) verb() string {
	switch op {
	case OpGet:
		return "fetching brewery"
	case OpList:
		return "fetching breweries"
	case OpRandom:
		return "fetching random brewery"
	case OpSearch:
		return "searching breweries"
	case OpAutocomplete:
		return "fetching autocomplete"
	case OpMeta:
		return "fetching metadata"
	default:
		return string(op)
	}
}
