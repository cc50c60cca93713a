// Package validation describes the outcome of the order validation pipeline:
// per-check verdicts, the report, and the errors callers branch on.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrValidationFailed is wrapped by *ValidationFailedError. The order
	// stays Confirmed and the HTTP layer answers 422.
	ErrValidationFailed = errors.New("validation failed")

	// ErrIndeterminate is wrapped by *IndeterminateError. The caller may retry.
	ErrIndeterminate = errors.New("check indeterminate")
)

// Verdict is the outcome of one check.
type Verdict int

const (
	// NotRun marks checks skipped after an earlier check did not pass.
	NotRun Verdict = iota
	// Pass lets the pipeline continue.
	Pass
	// Fail is a business rejection.
	Fail
	// Indeterminate means the check could not decide in time.
	Indeterminate
)

// String returns the wire name.
func (v Verdict) String() string {
	switch v {
	case Pass:
		return "Pass"
	case Fail:
		return "Fail"
	case Indeterminate:
		return "Indeterminate"
	default:
		return "NotRun"
	}
}

// CheckName identifies a pipeline stage.
type CheckName string

const (
	InventoryCheck  CheckName = "InventoryCheck"
	CreditCheck     CheckName = "CreditCheck"
	ComplianceCheck CheckName = "ComplianceCheck"
)

// Outcome is what a check or an external provider returns.
type Outcome struct {
	Verdict Verdict
	// Reasons explain a Fail or Indeterminate verdict; empty on Pass.
	Reasons []string
}

// Passed is a passing outcome.
func Passed() Outcome {
	return Outcome{Verdict: Pass}
}

// Failed is a failing outcome with every reason the check found.
func Failed(reasons ...string) Outcome {
	return Outcome{Verdict: Fail, Reasons: reasons}
}

// Undetermined is an Indeterminate outcome with a single reason.
func Undetermined(reason string) Outcome {
	return Outcome{Verdict: Indeterminate, Reasons: []string{reason}}
}

// CheckResult is one row of a report.
type CheckResult struct {
	Check   CheckName
	Verdict Verdict
	Reasons []string
	// Duration is zero for NotRun rows.
	Duration time.Duration
}

// Report lists every configured check in run order. Checks after the first
// non-passing one stay NotRun.
type Report struct {
	OrderID kernel.UUID
	Results []CheckResult
}

// Passed is true only when every check passed.
func (r Report) Passed() bool {
	if len(r.Results) == 0 {
		return false
	}
	for _, res := range r.Results {
		if res.Verdict != Pass {
			return false
		}
	}
	return true
}

// Result returns the row for check.
func (r Report) Result(check CheckName) (CheckResult, bool) {
	for _, res := range r.Results {
		if res.Check == check {
			return res, true
		}
	}
	return CheckResult{}, false
}

// Err converts the first non-passing row into a typed error, or nil when the report passed.
func (r Report) Err() error {
	for _, res := range r.Results {
		switch res.Verdict {
		case Pass:
			continue
		case Fail:
			return &ValidationFailedError{Check: res.Check, Reasons: append([]string(nil), res.Reasons...)}
		default:
			return &IndeterminateError{Check: res.Check, Reason: strings.Join(res.Reasons, "; ")}
		}
	}
	return nil
}

// ValidationFailedError carries every reason a check gave, e.g. all inventory shortfalls.
type ValidationFailedError struct {
	Check   CheckName
	Reasons []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidationFailed, e.Check, strings.Join(e.Reasons, "; "))
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

// IndeterminateError means a check could not decide (timeout, provider down). Retryable.
type IndeterminateError struct {
	Check  CheckName
	Reason string
}

func (e *IndeterminateError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrIndeterminate, e.Check, e.Reason)
}

func (e *IndeterminateError) Unwrap() error {
	return ErrIndeterminate
}
