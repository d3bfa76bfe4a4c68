package main

import "github.com/grafana/xk6-abtest/common"

//go:generate easyjson -all report.go

// replayReport is the outcome of a replay run.
type replayReport struct {
	TestID  string               `json:"testId"`
	APIBase string               `json:"apiBase"`
	State   common.StateSnapshot `json:"state"`
	Clicks  []clickReport        `json:"clicks"`
}

// clickReport describes a single replayed click. Reported is false when
// the click happened before a variant was assigned.
type clickReport struct {
	Element    string `json:"element"`
	Found      bool   `json:"found"`
	Actionable bool   `json:"actionable"`
	Event      string `json:"event,omitempty"`
	Reported   bool   `json:"reported"`
}
