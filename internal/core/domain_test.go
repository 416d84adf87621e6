package core

import (
	"testing"
	"time"
)

func TestKindValidate(t *testing.T) {
	if err := Utang.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Meminjamkan.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Kind("Pinjol").Validate(); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Rupiah: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Rupiah: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Rupiah: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestDebtValidate(t *testing.T) {
	good := Debt{
		Name:   "Budi",
		Kind:   Utang,
		Method: "Cash",
		Date:   time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
		Amount: Money{Rupiah: 250000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Debt{
		{Name: "  ", Kind: Utang, Method: "Cash", Date: good.Date, Amount: good.Amount},
		{Name: "Budi", Kind: Kind("x"), Method: "Cash", Date: good.Date, Amount: good.Amount},
		{Name: "Budi", Kind: Utang, Method: "", Date: good.Date, Amount: good.Amount},
		{Name: "Budi", Kind: Utang, Method: "Cash", Date: time.Time{}, Amount: good.Amount},
		{Name: "Budi", Kind: Utang, Method: "Cash", Date: good.Date, Amount: Money{Rupiah: 0}},
	}
	for i, d := range bads {
		if err := d.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseInputDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-08-11", "2025-08-11T00:00:00", true}, // date-only padded to midnight
		{"2025-08-11T14:30:00", "2025-08-11T14:30:00", true},
		{"11/08/2025", "", false},
		{"", "", false},
		{"2025-13-40", "", false},
	}
	for _, tc := range cases {
		got, err := ParseInputDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error %v", tc.in, err)
			}
			if FormatAPIDate(got) != tc.want {
				t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, FormatAPIDate(got))
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}
