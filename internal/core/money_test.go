package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 1, true},
		{"250000", 250000, true},
		{"1.500.000", 1500000, true},
		{" 42 ", 42, true},
		{"0", 0, false},
		{"-100", 0, false},
		{"+100", 0, false},
		{"12,50", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "Rp 0"},
		{999, "Rp 999"},
		{1000, "Rp 1.000"},
		{1500000, "Rp 1.500.000"},
		{-250000, "-Rp 250.000"},
	}
	for _, tc := range cases {
		if got := FormatRupiah(tc.in); got != tc.out {
			t.Fatalf("%d expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSigned(5000, true); got != "-5.000" {
		t.Fatalf("owed expected -5.000, got %q", got)
	}
	if got := FormatSigned(5000, false); got != "+5.000" {
		t.Fatalf("lent expected +5.000, got %q", got)
	}
}
