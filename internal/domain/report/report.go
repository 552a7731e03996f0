// Package report derives summary views from the full set of ledger
// records. Everything here is read-side computation over an in-memory
// slice; nothing mutates the underlying store.
package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/contable-ledger/internal/domain/journal"
)

// Account classes are a convention over the PUC naming scheme: a string
// prefix match on the account code, not a declared type field and not a
// numeric range.
var (
	incomePrefixes  = []string{"4"}
	expensePrefixes = []string{"5", "6"}
	taxPrefixes     = []string{"23", "24"}
)

// Summary holds the debit/credit totals over a record set. Difference
// is debit minus credit and doubles as a whole-ledger balance check.
type Summary struct {
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Difference decimal.Decimal `json:"difference"`
}

// Totals sums debits and credits over the given records.
func Totals(records []*journal.LedgerRecord) Summary {
	var debit, credit decimal.Decimal
	for _, rec := range records {
		debit = debit.Add(rec.Debit)
		credit = credit.Add(rec.Credit)
	}
	return Summary{Debit: debit, Credit: credit, Difference: debit.Sub(credit)}
}

func hasAnyPrefix(account string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(account, p) {
			return true
		}
	}
	return false
}

// FilterByPrefix returns the records whose account code starts with any
// of the given prefixes.
func FilterByPrefix(records []*journal.LedgerRecord, prefixes ...string) []*journal.LedgerRecord {
	var out []*journal.LedgerRecord
	for _, rec := range records {
		if hasAnyPrefix(rec.Account, prefixes) {
			out = append(out, rec)
		}
	}
	return out
}

// creditNatured reports whether the account class accumulates on the
// credit side (income and tax liability accounts). Net figures follow
// the normal accounting balance direction per class, not one uniform
// formula.
func creditNatured(account string) bool {
	return hasAnyPrefix(account, incomePrefixes) || hasAnyPrefix(account, taxPrefixes)
}

// GroupTotal is one bucket of a grouped sum.
type GroupTotal struct {
	Key    string          `json:"key"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
	Net    decimal.Decimal `json:"net"`
}

// GroupByAccount sums debit/credit per account code. Net is
// credit-debit for credit-natured accounts and debit-credit otherwise.
func GroupByAccount(records []*journal.LedgerRecord) []GroupTotal {
	return groupBy(records, func(r *journal.LedgerRecord) string { return r.Account }, func(r *journal.LedgerRecord) bool { return creditNatured(r.Account) })
}

// GroupByBusinessUnit sums debit/credit per business unit tag.
func GroupByBusinessUnit(records []*journal.LedgerRecord) []GroupTotal {
	return groupBy(records, func(r *journal.LedgerRecord) string { return r.BusinessUnit }, func(r *journal.LedgerRecord) bool { return creditNatured(r.Account) })
}

func groupBy(records []*journal.LedgerRecord, key func(*journal.LedgerRecord) string, credited func(*journal.LedgerRecord) bool) []GroupTotal {
	buckets := make(map[string]*GroupTotal)
	for _, rec := range records {
		k := key(rec)
		bucket, ok := buckets[k]
		if !ok {
			bucket = &GroupTotal{Key: k}
			buckets[k] = bucket
		}
		bucket.Debit = bucket.Debit.Add(rec.Debit)
		bucket.Credit = bucket.Credit.Add(rec.Credit)
		if credited(rec) {
			bucket.Net = bucket.Net.Add(rec.Credit).Sub(rec.Debit)
		} else {
			bucket.Net = bucket.Net.Add(rec.Debit).Sub(rec.Credit)
		}
	}

	out := make([]GroupTotal, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TaxSummary groups the tax-liability records (prefixes 23 and 24) by
// account. Net is credit minus debit, the liability balance direction.
func TaxSummary(records []*journal.LedgerRecord) []GroupTotal {
	return GroupByAccount(FilterByPrefix(records, taxPrefixes...))
}

// UnitResult is the profit-and-loss line of one business unit.
type UnitResult struct {
	BusinessUnit string          `json:"business_unit"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Net          decimal.Decimal `json:"net"`
}

// ProfitAndLossByUnit computes income (credit-debit over income
// accounts), expense (debit-credit over expense and cost accounts) and
// the resulting net per business unit.
func ProfitAndLossByUnit(records []*journal.LedgerRecord) []UnitResult {
	buckets := make(map[string]*UnitResult)
	for _, rec := range records {
		income := hasAnyPrefix(rec.Account, incomePrefixes)
		expense := hasAnyPrefix(rec.Account, expensePrefixes)
		if !income && !expense {
			continue
		}

		bucket, ok := buckets[rec.BusinessUnit]
		if !ok {
			bucket = &UnitResult{BusinessUnit: rec.BusinessUnit}
			buckets[rec.BusinessUnit] = bucket
		}
		if income {
			bucket.Income = bucket.Income.Add(rec.Credit).Sub(rec.Debit)
		} else {
			bucket.Expense = bucket.Expense.Add(rec.Debit).Sub(rec.Credit)
		}
		bucket.Net = bucket.Income.Sub(bucket.Expense)
	}

	out := make([]UnitResult, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BusinessUnit < out[j].BusinessUnit })
	return out
}

// Search returns the records where any textual field contains the query
// as a case-insensitive substring. An empty query matches everything.
func Search(records []*journal.LedgerRecord, query string) []*journal.LedgerRecord {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)

	var out []*journal.LedgerRecord
	for _, rec := range records {
		fields := []string{
			rec.Date.Format("2006-01-02"),
			rec.Document,
			rec.Counterparty,
			rec.Account,
			rec.Description,
			rec.CostCenter,
			rec.BusinessUnit,
			rec.SubmittedBy,
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
