// Package result formats a solved instance as the single-line compact JSON
// record the CLI prints.
package result

import (
	"encoding/json"
	"math"
)

// Record is the CLI's output record, matching spec.md §6 field-for-field.
// Result and Solution are the literal string "--" when no feasible solution
// was found, so they are typed as interface{} rather than float64/string.
type Record struct {
	Instance string      `json:"Instance"`
	Time     float64     `json:"Time"`
	Result   interface{} `json:"Result"`
	Solution interface{} `json:"Solution"`
}

// NewFound builds the record for a successful solve: Result is cost rounded
// to the nearest integer, Solution is the literal "OPT".
func NewFound(instance string, seconds, cost float64) Record {
	return Record{
		Instance: instance,
		Time:     roundTo(seconds, 2),
		Result:   math.Round(cost),
		Solution: "OPT",
	}
}

// NewNotFound builds the record for a search that never produced a feasible
// integer solution.
func NewNotFound(instance string, seconds float64) Record {
	return Record{
		Instance: instance,
		Time:     roundTo(seconds, 2),
		Result:   "--",
		Solution: "--",
	}
}

// MarshalLine renders r as the single compact JSON line the CLI prints.
func (r Record) MarshalLine() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
