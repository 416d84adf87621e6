// Package core provides the debt ledger domain types and money handling.
//
// Amounts are whole rupiah held as int64; the currency has no fractional
// unit in this application, so there is no cents representation.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user-entered amount string to whole rupiah.
//
// Digit grouping with dots is accepted ("1.500.000" == 1500000). Signs,
// decimals and zero amounts are rejected; the ledger only records positive
// whole amounts.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ".", "")
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatRupiah renders an amount the way the UI shows it: "Rp 1.500.000",
// with a leading minus for negative values (net balance can go negative).
func FormatRupiah(rupiah int64) string {
	neg := rupiah < 0
	if neg {
		rupiah = -rupiah
	}
	s := groupThousands(rupiah)
	if neg {
		return "-Rp " + s
	}
	return "Rp " + s
}

// FormatSigned renders an amount with an explicit sign, used for recent
// transaction rows (+ for money lent, - for money owed).
func FormatSigned(rupiah int64, owed bool) string {
	if owed {
		return "-" + groupThousands(rupiah)
	}
	return "+" + groupThousands(rupiah)
}

func groupThousands(v int64) string {
	digits := strconv.FormatInt(v, 10)
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
