package tax

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidTables = errors.New("invalid tax tables")

// Inputs are bounded before any arithmetic: the decoder accepts exponents
// such as 1e5000000, and comparing or rescaling those expands the coefficient.
const (
	MaxScale       = 10
	maxAmountDigit = 12
)

// MaxAmount is the largest magnitude accepted for a monetary or percentage
// input.
var MaxAmount = decimal.New(1, maxAmountDigit)

var outOfRange = "must be at most " + MaxAmount.String() + " with up to " + strconv.Itoa(MaxScale) + " decimal places"

// WithinLimits reports whether v has at most MaxScale decimal places and an
// absolute value no greater than MaxAmount. The exponent is inspected first
// so an oversized value is refused without being expanded.
func WithinLimits(v decimal.Decimal) bool {
	exp := v.Exponent()
	if exp < -MaxScale || exp > maxAmountDigit {
		return false
	}
	return v.Abs().LessThanOrEqual(MaxAmount)
}

// FieldIssue names one rejected input field using its wire name.
type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError is returned by every calculator when one or more inputs are
// out of range. No calculation runs when it is returned.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Reason)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Check accumulates field issues so callers can report all of them at once.
type Check struct {
	issues []FieldIssue
}

func (c *Check) Add(field, reason string) {
	c.issues = append(c.issues, FieldIssue{Field: field, Reason: reason})
}

// AtMost records an issue when v falls outside the accepted limits or exceeds
// max. It reports whether v passed.
func (c *Check) AtMost(field string, v, max decimal.Decimal) bool {
	if !WithinLimits(v) {
		c.Add(field, outOfRange)
		return false
	}
	if v.GreaterThan(max) {
		c.Add(field, "must be at most "+max.String())
		return false
	}
	return true
}

func (c *Check) Positive(field string, v decimal.Decimal) {
	if !c.AtMost(field, v, MaxAmount) {
		return
	}
	if !v.IsPositive() {
		c.Add(field, "must be greater than 0")
	}
}

func (c *Check) NonNegative(field string, v decimal.Decimal) {
	if !c.AtMost(field, v, MaxAmount) {
		return
	}
	if v.IsNegative() {
		c.Add(field, "must be greater than or equal to 0")
	}
}

func (c *Check) Between(field string, v, lo, hi decimal.Decimal) {
	if !WithinLimits(v) {
		c.Add(field, outOfRange)
		return
	}
	if v.LessThan(lo) || v.GreaterThan(hi) {
		c.Add(field, "must be between "+lo.String()+" and "+hi.String())
	}
}

func (c *Check) IntBetween(field string, v, lo, hi int) {
	if v < lo || v > hi {
		c.Add(field, "must be between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
	}
}

func (c *Check) IntNonNegative(field string, v int) {
	if v < 0 {
		c.Add(field, "must be greater than or equal to 0")
	}
}

// Err returns nil when no issue was recorded, otherwise a *ValidationError
// with issues sorted by field.
func (c *Check) Err() error {
	if len(c.issues) == 0 {
		return nil
	}
	out := make([]FieldIssue, len(c.issues))
	copy(out, c.issues)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return &ValidationError{Issues: out}
}
