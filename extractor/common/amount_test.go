package common

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"254,888.45", "254888.45"},
		{"1,000.00", "1000"},
		{"$54,321.99", "54321.99"},
		{"0.01", "0.01"},
		{"  713.74 ", "713.74"},
	}

	for _, test := range tests {
		got, err := ParseAmount(test.input)
		if err != nil {
			t.Errorf("ParseAmount(%q) returned error: %v", test.input, err)
			continue
		}
		if got.String() != test.expected {
			t.Errorf("ParseAmount(%q) = %s, expected %s", test.input, got.String(), test.expected)
		}
	}
}

func TestParseAmount_Malformed(t *testing.T) {
	if _, err := ParseAmount("12..34"); err == nil {
		t.Error("Expected error for '12..34'")
	}
	if _, err := ParseAmount(""); err == nil {
		t.Error("Expected error for empty string")
	}
}

func TestAddN_PropagatesAbsence(t *testing.T) {
	present := Present(decimal.NewFromInt(10))

	if got := AddN(present, Absent()); got.Valid {
		t.Errorf("Expected absent result, got %s", got.Decimal.String())
	}
	if got := AddN(Absent(), present); got.Valid {
		t.Errorf("Expected absent result, got %s", got.Decimal.String())
	}
	if got := AddN(Absent(), Absent()); got.Valid {
		t.Errorf("Expected absent result, got %s", got.Decimal.String())
	}

	got := AddN(present, Present(decimal.RequireFromString("2.5")))
	if !got.Valid || got.Decimal.String() != "12.5" {
		t.Errorf("Expected 12.5, got %+v", got)
	}
}

func TestSubN_PropagatesAbsence(t *testing.T) {
	present := Present(decimal.NewFromInt(10))

	if got := SubN(present, Absent()); got.Valid {
		t.Errorf("Expected absent result, got %s", got.Decimal.String())
	}
	if got := SubN(Absent(), present); got.Valid {
		t.Errorf("Expected absent result, got %s", got.Decimal.String())
	}

	got := SubN(present, Present(decimal.RequireFromString("12.5")))
	if !got.Valid || got.Decimal.String() != "-2.5" {
		t.Errorf("Expected -2.5, got %+v", got)
	}
}

func TestNormalizeFee(t *testing.T) {
	if got := NormalizeFee(Present(decimal.RequireFromString("-200.00"))); got.Decimal.String() != "200" {
		t.Errorf("Expected 200, got %s", got.Decimal.String())
	}
	if got := NormalizeFee(Present(decimal.RequireFromString("200.00"))); got.Decimal.String() != "200" {
		t.Errorf("Expected 200, got %s", got.Decimal.String())
	}
	if got := NormalizeFee(Absent()); got.Valid {
		t.Error("Expected absent fee to stay absent")
	}
}
