package reconcile

import (
	"errors"
	"testing"
	"time"

	"github.com/investco-dev/investco/extractor/common"
	"github.com/shopspring/decimal"
)

func datePtr(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func record(source, end string, beginning, ending string) *common.StatementRecord {
	rec := &common.StatementRecord{Source: source, PeriodEnd: datePtr(end)}
	if beginning != "" {
		rec.BeginningValue = common.Present(decimal.RequireFromString(beginning))
	}
	if ending != "" {
		rec.EndingValue = common.Present(decimal.RequireFromString(ending))
	}
	return rec
}

func TestBuild_OrdersByPeriodEnd(t *testing.T) {
	// Inserted out of order on purpose.
	records := []*common.StatementRecord{
		record("oct", "2025-10-31", "210.00", "220.00"),
		record("aug", "2025-08-31", "100.00", "200.00"),
		record("sep", "2025-09-30", "200.00", "210.00"),
	}

	chain, err := Build("ACC-1", records)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(chain.Links) != 3 {
		t.Fatalf("Expected 3 links, got %d", len(chain.Links))
	}
	order := []string{"aug", "sep", "oct"}
	for i, expected := range order {
		if chain.Links[i].Record.Source != expected {
			t.Errorf("Expected link %d to be %s, got %s", i, expected, chain.Links[i].Record.Source)
		}
	}

	// The input slice is not reordered.
	if records[0].Source != "oct" {
		t.Error("Expected input slice to be left untouched")
	}
}

func TestBuild_FirstLinkHasNoGap(t *testing.T) {
	records := []*common.StatementRecord{
		record("aug", "2025-08-31", "100.00", "200.00"),
		record("sep", "2025-09-30", "200.00", "210.00"),
	}

	chain, err := Build("ACC-1", records)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if chain.Links[0].Gap.Valid {
		t.Errorf("Expected no gap on the first link, got %s", chain.Links[0].Gap.Decimal.String())
	}
	if !chain.Links[1].Gap.Valid || !chain.Links[1].Gap.Decimal.IsZero() {
		t.Errorf("Expected zero gap on the second link, got %+v", chain.Links[1].Gap)
	}
}

func TestBuild_DetectsGap(t *testing.T) {
	records := []*common.StatementRecord{
		record("aug", "2025-08-31", "100.00", "200.00"),
		record("sep", "2025-09-30", "205.50", "210.00"),
	}

	chain, err := Build("ACC-1", records)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	gap := chain.Links[1].Gap
	if !gap.Valid || gap.Decimal.String() != "5.5" {
		t.Errorf("Expected gap 5.5, got %+v", gap)
	}
}

func TestBuild_AbsentOperandMakesGapUnknown(t *testing.T) {
	records := []*common.StatementRecord{
		record("aug", "2025-08-31", "100.00", ""),
		record("sep", "2025-09-30", "205.50", "210.00"),
	}

	chain, err := Build("ACC-1", records)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if chain.Links[1].Gap.Valid {
		t.Errorf("Expected unknown gap, got %s", chain.Links[1].Gap.Decimal.String())
	}
}

func TestBuild_DuplicatePeriod(t *testing.T) {
	records := []*common.StatementRecord{
		record("first", "2025-09-30", "100.00", "200.00"),
		record("second", "2025-09-30", "100.00", "200.00"),
	}

	_, err := Build("ACC-1", records)

	var dup *DuplicatePeriodError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicatePeriodError, got %v", err)
	}
	if dup.First != "first" || dup.Second != "second" {
		t.Errorf("Expected both record identities, got %q and %q", dup.First, dup.Second)
	}
	if dup.PeriodEnd.Format("2006-01-02") != "2025-09-30" {
		t.Errorf("Expected period 2025-09-30, got %s", dup.PeriodEnd.Format("2006-01-02"))
	}
}

func TestBuild_MissingPeriod(t *testing.T) {
	records := []*common.StatementRecord{
		{Source: "undated"},
	}

	_, err := Build("ACC-1", records)

	var missing *MissingPeriodError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingPeriodError, got %v", err)
	}
	if missing.Source != "undated" {
		t.Errorf("Expected source 'undated', got %q", missing.Source)
	}
}

func TestBuild_StatementDateFallback(t *testing.T) {
	undated := &common.StatementRecord{Source: "fallback", StatementDate: datePtr("2025-07-31")}
	records := []*common.StatementRecord{
		record("aug", "2025-08-31", "100.00", "200.00"),
		undated,
	}

	chain, err := Build("ACC-1", records)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if chain.Links[0].Record.Source != "fallback" {
		t.Errorf("Expected statement date fallback to order first, got %s", chain.Links[0].Record.Source)
	}
}
