package service

import (
	"github.com/gofrs/uuid/v5"
)

// Outcome is the closed set of results of a mutating operation.
type Outcome string

const (
	Success          Outcome = "success"
	ValidationFailed Outcome = "validation_failed"
	NotFound         Outcome = "not_found"
	StoreUnavailable Outcome = "store_unavailable"
)

// Result reports how a mutation ended. ID is the affected transaction on success.
type Result struct {
	Outcome Outcome
	Message string
	ID      uuid.UUID
}

func (r Result) OK() bool { return r.Outcome == Success }

func failed(o Outcome, msg string) Result {
	return Result{Outcome: o, Message: msg}
}

// Payload is a transaction as entered by a user, before validation.
type Payload struct {
	Type     string
	Amount   string
	Category string
	Date     string
	Note     string
}
