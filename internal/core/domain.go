package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// Utang is money the user owes someone else.
	Utang Kind = "Utang"
	// Meminjamkan is money the user lent out (piutang).
	Meminjamkan Kind = "Meminjamkan"
)

// APIDateLayout is the naive datetime format the backend expects and emits.
// There is no zone component; dates are calendar-local.
const APIDateLayout = "2006-01-02T15:04:05"

// DateOnlyLayout is the format accepted from user input. Date-only values are
// padded to midnight before transmission.
const DateOnlyLayout = "2006-01-02"

type (
	Kind string

	Money struct {
		Rupiah int64
	}

	// Debt is one ledger entry as held by the remote store. The client never
	// assigns IDs or owners; both come back from the server.
	Debt struct {
		ID        int64
		UserID    int64
		Name      string
		Kind      Kind
		Method    string
		Date      time.Time
		Amount    Money
		IsChecked bool
		CreatedAt time.Time
	}

	// Stats is derived, never persisted. Net follows the server's sign
	// convention: positive favors the user (lent minus owed).
	Stats struct {
		Owed Money
		Lent Money
		Net  Money
	}

	// ActivityPoint is one bucket of a grouped activity series (yearly or
	// weekly): total owed and lent within the bucket.
	ActivityPoint struct {
		Label string
		Owed  Money
		Lent  Money
	}

	// BalancePoint is one bucket of the monthly balance series.
	BalancePoint struct {
		Label   string
		Balance Money
	}
)

var (
	ErrEmptyName     = errors.New("empty counterparty name")
	ErrEmptyMethod   = errors.New("empty payment method")
	ErrInvalidKind   = errors.New("invalid debt kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

func (k Kind) Validate() error {
	switch k {
	case Utang, Meminjamkan:
		return nil
	}
	return ErrInvalidKind
}

// IsOwed reports whether the kind counts toward the owed total.
func (k Kind) IsOwed() bool {
	return k == Utang
}

func (m Money) Validate() error {
	if m.Rupiah <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the client-settable fields of a debt before submission.
// Server-assigned fields (ID, UserID, CreatedAt) are not inspected.
func (d Debt) Validate() error {
	if len(strings.TrimSpace(d.Name)) == 0 {
		return ErrEmptyName
	}
	if len(d.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if err := d.Kind.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(d.Method)) == 0 {
		return ErrEmptyMethod
	}
	if d.Date.IsZero() {
		return ErrInvalidDate
	}
	return d.Amount.Validate()
}

// ParseInputDate accepts a date-only or full naive-datetime string and
// normalizes it to the value transmitted to the API. Date-only input maps to
// midnight.
func ParseInputDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(APIDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateOnlyLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatAPIDate renders a time in the backend's naive datetime format.
func FormatAPIDate(t time.Time) string {
	return t.Format(APIDateLayout)
}
