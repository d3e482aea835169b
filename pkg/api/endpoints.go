package api

import (
	"fmt"
	"time"
)

// EndpointCategory represents the class of a monitored endpoint
type EndpointCategory string

const (
	CategoryModel EndpointCategory = "model"
	CategoryPages EndpointCategory = "pages"
	CategoryAPI   EndpointCategory = "api"
)

func (c EndpointCategory) String() string {
	return string(c)
}

func GetEndpointCategory(s string) (EndpointCategory, error) {
	switch s {
	case string(CategoryModel):
		return CategoryModel, nil
	case string(CategoryPages):
		return CategoryPages, nil
	case string(CategoryAPI):
		return CategoryAPI, nil
	default:
		return EndpointCategory(s), fmt.Errorf("invalid endpoint category: %s", s)
	}
}

// Endpoint represents a single monitored target
type Endpoint struct {
	URL      string           `json:"url" validate:"required,url"`
	Category EndpointCategory `json:"category" validate:"required,oneof=model pages api"`
	// AuthToken is the resolved secret value, never a reference. It is
	// excluded from any serialized form of the endpoint.
	AuthToken string `json:"-"`
	// Predicate is an optional JSONPath expression that must resolve in
	// the response body of a model endpoint.
	Predicate string        `json:"predicate,omitempty"`
	Timeout   time.Duration `json:"timeout,omitempty"`
}
