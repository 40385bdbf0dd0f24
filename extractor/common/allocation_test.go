package common

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestResolveAllocation(t *testing.T) {
	ending := Present(decimal.RequireFromString("213513.74"))
	percents := map[AllocationCategory]decimal.Decimal{
		CategoryMoneyMarket: decimal.RequireFromString("25.5"),
		CategoryEquities:    decimal.RequireFromString("71.3"),
		CategoryFixedIncome: decimal.RequireFromString("3.2"),
	}

	entries, warnings := ResolveAllocation(ending, percents)

	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	expected := map[AllocationCategory]string{
		CategoryMoneyMarket: "54446",
		CategoryEquities:    "152235.3",
		CategoryFixedIncome: "6832.44",
	}
	for _, e := range entries {
		if !e.Amount.Valid {
			t.Errorf("Expected %s amount to be present", e.Category)
			continue
		}
		if e.Amount.Decimal.String() != expected[e.Category] {
			t.Errorf("Expected %s amount %s, got %s", e.Category, expected[e.Category], e.Amount.Decimal.String())
		}
	}

	// Entries come back in display order.
	if entries[0].Category != CategoryMoneyMarket || entries[2].Category != CategoryFixedIncome {
		t.Errorf("Expected display order, got %v %v %v", entries[0].Category, entries[1].Category, entries[2].Category)
	}
}

func TestResolveAllocation_Unbalanced(t *testing.T) {
	ending := Present(decimal.RequireFromString("100000.00"))
	percents := map[AllocationCategory]decimal.Decimal{
		CategoryEquities:    decimal.RequireFromString("60.0"),
		CategoryFixedIncome: decimal.RequireFromString("30.0"),
	}

	entries, warnings := ResolveAllocation(ending, percents)

	// Unbalanced percentages still resolve.
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "unbalanced") {
		t.Errorf("Expected unbalanced warning, got %v", warnings)
	}
}

func TestResolveAllocation_AbsentEndingValue(t *testing.T) {
	percents := map[AllocationCategory]decimal.Decimal{
		CategoryEquities: decimal.RequireFromString("100.0"),
	}

	entries, warnings := ResolveAllocation(Absent(), percents)

	if entries != nil {
		t.Errorf("Expected no entries, got %v", entries)
	}
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(warnings))
	}
}

func TestResolveAllocation_NoPercentages(t *testing.T) {
	entries, warnings := ResolveAllocation(Present(decimal.NewFromInt(1000)), nil)
	if entries != nil || warnings != nil {
		t.Errorf("Expected nothing for empty percentages, got %v %v", entries, warnings)
	}
}

func TestResolveAllocation_RoundsHalfUp(t *testing.T) {
	// 1000.01 * 0.5% = 5.00005 -> 5.00; 333.33 * 50% = 166.665 -> 166.67
	ending := Present(decimal.RequireFromString("333.33"))
	percents := map[AllocationCategory]decimal.Decimal{
		CategoryEquities:    decimal.RequireFromString("50.0"),
		CategoryFixedIncome: decimal.RequireFromString("50.0"),
	}

	entries, _ := ResolveAllocation(ending, percents)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Amount.Decimal.String() != "166.67" {
			t.Errorf("Expected 166.67, got %s", e.Amount.Decimal.String())
		}
	}
}
