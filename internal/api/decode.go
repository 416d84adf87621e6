package api

import (
	"encoding/json"
	"strconv"
	"time"

	"utangku/internal/core"
)

// The backend's JSON is treated as untrusted in shape: individual fields
// may be absent or mistyped without failing a whole response. Missing
// numbers become 0, missing strings become the documented fallback, missing
// arrays become empty. Only envelope-level problems (transport, auth,
// non-JSON bodies) are errors.

// nameFallback substitutes for absent counterparty labels.
const nameFallback = "Unknown"

type debtWire struct {
	ID        any `json:"id"`
	UserID    any `json:"user_id"`
	Name      any `json:"name"`
	Type      any `json:"type"`
	Method    any `json:"method"`
	Date      any `json:"date"`
	Amount    any `json:"amount"`
	IsChecked any `json:"is_checked"`
	CreatedAt any `json:"created_at"`
}

func (w debtWire) toDebt() core.Debt {
	return core.Debt{
		ID:        asInt64(w.ID),
		UserID:    asInt64(w.UserID),
		Name:      asString(w.Name, nameFallback),
		Kind:      asKind(w.Type),
		Method:    asString(w.Method, nameFallback),
		Date:      asTime(w.Date),
		Amount:    core.Money{Rupiah: asInt64(w.Amount)},
		IsChecked: asBool(w.IsChecked),
		CreatedAt: asTime(w.CreatedAt),
	}
}

type statsWire struct {
	Utang   any `json:"utang"`
	Piutang any `json:"piutang"`
	Total   any `json:"total"`
}

func (w statsWire) toStats() core.Stats {
	return core.Stats{
		Owed: core.Money{Rupiah: asInt64(w.Utang)},
		Lent: core.Money{Rupiah: asInt64(w.Piutang)},
		Net:  core.Money{Rupiah: asInt64(w.Total)},
	}
}

type activityWire struct {
	Year    any `json:"year"`
	Week    any `json:"week"`
	Utang   any `json:"utang"`
	Piutang any `json:"piutang"`
}

func (w activityWire) toPoint() core.ActivityPoint {
	label := asString(w.Year, "")
	if label == "" {
		label = asString(w.Week, nameFallback)
	}
	return core.ActivityPoint{
		Label: label,
		Owed:  core.Money{Rupiah: asInt64(w.Utang)},
		Lent:  core.Money{Rupiah: asInt64(w.Piutang)},
	}
}

type balanceWire struct {
	Month   any `json:"month"`
	Balance any `json:"balance"`
}

func (w balanceWire) toPoint() core.BalancePoint {
	return core.BalancePoint{
		Label:   asString(w.Month, nameFallback),
		Balance: core.Money{Rupiah: asInt64(w.Balance)},
	}
}

type profileWire struct {
	FullName    any `json:"full_name"`
	Email       any `json:"email"`
	DateOfBirth any `json:"date_of_birth"`
	Address     any `json:"address"`
	City        any `json:"city"`
	PostalCode  any `json:"postal_code"`
	Country     any `json:"country"`
}

func (w profileWire) toProfile() Profile {
	return Profile{
		FullName:    asString(w.FullName, ""),
		Email:       asString(w.Email, ""),
		DateOfBirth: asString(w.DateOfBirth, ""),
		Address:     asString(w.Address, ""),
		City:        asString(w.City, ""),
		PostalCode:  asString(w.PostalCode, ""),
		Country:     asString(w.Country, ""),
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return i
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

func asString(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asKind mirrors the UI's mapping: anything that is not explicitly lending
// counts as owed.
func asKind(v any) core.Kind {
	switch asString(v, "") {
	case string(core.Meminjamkan), "Piutang":
		return core.Meminjamkan
	}
	return core.Utang
}

// dateLayouts are the shapes the backend has been seen emitting.
var dateLayouts = []string{
	core.APIDateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	core.DateOnlyLayout,
}

// asTime parses a timestamp; failures yield the zero time, which excludes
// the record from bucketed series but not from totals.
func asTime(v any) time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
