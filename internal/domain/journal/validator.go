package journal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrEmptyEntry indicates an entry with no debit or credit activity.
// Such an entry is technically balanced but is never persisted.
type ErrEmptyEntry struct{}

func (e ErrEmptyEntry) Error() string {
	return "journal entry has no active lines"
}

// ErrUnbalancedEntry indicates debits and credits that do not match to
// two decimal places.
type ErrUnbalancedEntry struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

func (e ErrUnbalancedEntry) Error() string {
	return fmt.Sprintf("journal entry is unbalanced: debit %s != credit %s", e.Debit.StringFixed(2), e.Credit.StringFixed(2))
}

// Is implements the errors.Is interface for ErrUnbalancedEntry
func (e ErrUnbalancedEntry) Is(target error) bool {
	_, ok := target.(ErrUnbalancedEntry)
	return ok
}

// Validate decides whether a draft entry is postable. It is a pure
// function over the in-memory draft and must be re-run on every edit;
// the verdict is never cached across mutations.
//
// Postable iff round(total debit - total credit, 2) == 0 and the total
// debit is greater than zero.
func Validate(e *JournalEntry) error {
	debit, credit := e.Totals()
	if !debit.Sub(credit).Round(2).IsZero() {
		return ErrUnbalancedEntry{Debit: debit, Credit: credit}
	}
	if !debit.IsPositive() {
		return ErrEmptyEntry{}
	}
	return nil
}

// IsPostable reports whether the entry passes validation.
func IsPostable(e *JournalEntry) bool {
	return Validate(e) == nil
}
