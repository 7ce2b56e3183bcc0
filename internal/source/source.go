// Package source maps a query string to an ordered list of suggestions.
package source

import (
	"context"
	"fmt"

	"suggestbox/internal/domain"
)

// Source is the collaborator the combobox asks for suggestions
type Source interface {
	Suggest(ctx context.Context, query string) (domain.Results, error)
}

// Func adapts a plain function to a Source
type Func func(ctx context.Context, query string) (domain.Results, error)

// Suggest calls f
func (f Func) Suggest(ctx context.Context, query string) (domain.Results, error) {
	return f(ctx, query)
}

// StatusError is returned when the endpoint answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Status     string
	RequestID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("suggestion endpoint returned %s (request %s)", e.Status, e.RequestID)
}
