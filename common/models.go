package common

import "gopkg.in/guregu/null.v3"

//go:generate easyjson -all models.go

// Section is an opaque page section record handed out with a variant.
type Section map[string]interface{}

// ExperimentRequest is the body of an assignment request.
type ExperimentRequest struct {
	TestID string `json:"testId"`
}

// ExperimentAssignment maps the visitor to a variant. It is produced once
// per page load by the ExperimentClient.
type ExperimentAssignment struct {
	VariantID string    `json:"variantId"`
	Sections  []Section `json:"sections"`
}

// ConversionEvent is reported for every actionable click once a variant
// is assigned. It is never stored.
type ConversionEvent struct {
	TestID    string `json:"testId"`
	VariantID string `json:"variantId"`
	Event     string `json:"event"`
}

// StateSnapshot is the host-page view of the SDK state.
type StateSnapshot struct {
	VariantID     null.String `json:"variantId"`
	Sections      []Section   `json:"sections"`
	IsInitialized bool        `json:"isInitialized"`
}
