package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-15", "2024-01-15", true},
		{"2024-01-15 13:45:00", "2024-01-15", true},
		{"2024-01-15T13:45:00", "2024-01-15", true},
		{"15/01/2024", "2024-01-15", true},
		{"  2024-01-15  ", "2024-01-15", true},
		{"", "", false},
		{"not a date", "", false},
		{"2024-13-99", "", false},
	}
	for _, tt := range tests {
		d, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Fatalf("ParseDate(%q) ok=%v, want %v", tt.in, ok, tt.ok)
		}
		if d.String() != tt.want {
			t.Fatalf("ParseDate(%q)=%q, want %q", tt.in, d.String(), tt.want)
		}
	}
}

func TestEmptyDate(t *testing.T) {
	var d Date
	if !d.IsEmpty() {
		t.Fatal("zero Date should be empty")
	}
	if d.Year() != 0 || d.Month() != 0 {
		t.Fatalf("empty date year/month = %d/%d, want 0/0", d.Year(), d.Month())
	}
	if d.String() != "" {
		t.Fatalf("empty date renders %q, want empty", d.String())
	}
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.50", "12.5"},
		{"1,234.56", "1234.56"},
		{"", "0"},
		{"abc", "0"},
		{"-5", "0"},
		{"  7 ", "7"},
	}
	for _, tt := range tests {
		if got := CoerceAmount(tt.in).String(); got != tt.want {
			t.Fatalf("CoerceAmount(%q)=%s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeSentinels(t *testing.T) {
	r := Record{Category: "  ", Merchant: "", Description: " coffee "}
	r.Normalize()
	if r.Category != DefaultCategory {
		t.Fatalf("category=%q, want %q", r.Category, DefaultCategory)
	}
	if r.Merchant != DefaultMerchant {
		t.Fatalf("merchant=%q, want %q", r.Merchant, DefaultMerchant)
	}
	if r.Description != "coffee" {
		t.Fatalf("description=%q, want trimmed", r.Description)
	}

	kept := Record{Category: "Food", Merchant: "Cafe"}
	kept.Normalize()
	if kept.Category != "Food" || kept.Merchant != "Cafe" {
		t.Fatalf("non-blank fields changed: %+v", kept)
	}
}

func TestBalance(t *testing.T) {
	r := Record{
		Income:  CoerceAmount("100"),
		Expense: CoerceAmount("30"),
	}
	if got := r.Balance().String(); got != "70" {
		t.Fatalf("balance=%s, want 70", got)
	}
}

func TestParseUserDate(t *testing.T) {
	if _, err := ParseUserDate("2024-02-01"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	_, err := ParseUserDate("bogus")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestParseUserAmount(t *testing.T) {
	amount, err := ParseUserAmount("expense amount", "")
	if err != nil || !amount.IsZero() {
		t.Fatalf("blank amount: got %s, %v", amount, err)
	}
	if _, err := ParseUserAmount("expense amount", "12.34"); err != nil {
		t.Fatalf("valid amount rejected: %v", err)
	}
	for _, bad := range []string{"abc", "-1"} {
		_, err := ParseUserAmount("expense amount", bad)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ParseUserAmount(%q): want ValidationError, got %v", bad, err)
		}
	}
}

func TestNewDateUTCMidnight(t *testing.T) {
	d := NewDate(2024, time.March, 5)
	if d.String() != "2024-03-05" {
		t.Fatalf("got %q", d.String())
	}
	if d.Year() != 2024 || d.Month() != 3 {
		t.Fatalf("year/month = %d/%d", d.Year(), d.Month())
	}
}
