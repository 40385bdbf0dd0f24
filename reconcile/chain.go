// Package reconcile orders an account's statements into a chain and checks
// each statement's internal consistency. Both views are pure functions over
// the record set: nothing here is cached or stored, so inserting a historical
// statement simply means rebuilding.
package reconcile

import (
	"fmt"
	"slices"
	"time"

	"github.com/investco-dev/investco/extractor/common"
	"github.com/shopspring/decimal"
)

// Link is one statement inside a chain together with its continuity gap to
// the chronological predecessor. The first link has no predecessor and no
// gap: that is the account's opening state, not an error.
type Link struct {
	Record *common.StatementRecord `json:"record"`
	Gap    decimal.NullDecimal     `json:"gap"`
}

// Chain is an account's statements ordered by period end ascending.
type Chain struct {
	AccountNumber string `json:"account_number"`
	Links         []Link `json:"links"`
}

// DuplicatePeriodError reports two records for one account claiming the same
// period end. It is fatal to chain construction; neither record is discarded.
type DuplicatePeriodError struct {
	AccountNumber string
	PeriodEnd     time.Time
	First         string
	Second        string
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("duplicate period %s for account %s: %q and %q",
		e.PeriodEnd.Format("2006-01-02"), e.AccountNumber, e.First, e.Second)
}

// MissingPeriodError reports a record that cannot be placed in a chain
// because it carries neither a period end nor a statement date.
type MissingPeriodError struct {
	Source string
}

func (e *MissingPeriodError) Error() string {
	return fmt.Sprintf("record %q has no period end date, cannot chain", e.Source)
}

// periodEnd is the chain ordering key, falling back to the statement date for
// records whose period end was not extracted.
func periodEnd(r *common.StatementRecord) *time.Time {
	if r.PeriodEnd != nil {
		return r.PeriodEnd
	}
	return r.StatementDate
}

// Build orders one account's records by period end and computes each link's
// continuity gap: this beginning value minus the predecessor's ending value.
// An absent operand makes the gap unknown rather than zero. A non-zero gap is
// reported, not failed, since real statements show rounding drift and
// unposted transactions.
func Build(accountNumber string, records []*common.StatementRecord) (*Chain, error) {
	ordered := make([]*common.StatementRecord, len(records))
	copy(ordered, records)

	for _, r := range ordered {
		if periodEnd(r) == nil {
			return nil, &MissingPeriodError{Source: r.Source}
		}
	}

	slices.SortStableFunc(ordered, func(a, b *common.StatementRecord) int {
		return periodEnd(a).Compare(*periodEnd(b))
	})

	chain := &Chain{AccountNumber: accountNumber, Links: make([]Link, 0, len(ordered))}

	for i, r := range ordered {
		if i > 0 && periodEnd(r).Equal(*periodEnd(ordered[i-1])) {
			return nil, &DuplicatePeriodError{
				AccountNumber: accountNumber,
				PeriodEnd:     *periodEnd(r),
				First:         ordered[i-1].Source,
				Second:        r.Source,
			}
		}

		link := Link{Record: r}
		if i > 0 {
			link.Gap = common.SubN(r.BeginningValue, ordered[i-1].EndingValue)
		}
		chain.Links = append(chain.Links, link)
	}

	return chain, nil
}
