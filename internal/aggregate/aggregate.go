// Package aggregate derives statistics and chartable series from a debt
// collection. Every function is pure: no I/O, no mutation of its input.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"utangku/internal/core"
)

// DefaultRecentLimit matches the dashboard's recent-transactions widget.
const DefaultRecentLimit = 3

// ComputeStats sums amounts by kind. Records with unparseable dates still
// count here; date quality only matters for bucketed series.
func ComputeStats(debts []core.Debt) core.Stats {
	var owed, lent int64
	for _, d := range debts {
		if d.Kind.IsOwed() {
			owed += d.Amount.Rupiah
		} else {
			lent += d.Amount.Rupiah
		}
	}
	return core.Stats{
		Owed: core.Money{Rupiah: owed},
		Lent: core.Money{Rupiah: lent},
		Net:  core.Money{Rupiah: lent - owed},
	}
}

// Recent returns the n newest records by date, ties kept in original order.
func Recent(debts []core.Debt, n int) []core.Debt {
	if n <= 0 {
		return nil
	}
	out := make([]core.Debt, len(debts))
	copy(out, debts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// SortForListing orders records for the all-records view: unsettled first,
// then settled, newest first within each group. The sort is stable so equal
// dates keep their original relative order.
func SortForListing(debts []core.Debt) []core.Debt {
	out := make([]core.Debt, len(debts))
	copy(out, debts)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsChecked != out[j].IsChecked {
			return !out[i].IsChecked
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// BucketByYear groups amounts by calendar year, keeping the most recent
// yearsBack distinct years present (fewer if not available), oldest first.
// Records without a parseable date are skipped.
func BucketByYear(debts []core.Debt, yearsBack int) []core.ActivityPoint {
	if yearsBack <= 0 {
		return nil
	}
	type totals struct{ owed, lent int64 }
	byYear := make(map[int]*totals)
	for _, d := range debts {
		if d.Date.IsZero() {
			continue
		}
		y := d.Date.Year()
		t := byYear[y]
		if t == nil {
			t = &totals{}
			byYear[y] = t
		}
		if d.Kind.IsOwed() {
			t.owed += d.Amount.Rupiah
		} else {
			t.lent += d.Amount.Rupiah
		}
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	if len(years) > yearsBack {
		years = years[len(years)-yearsBack:]
	}
	series := make([]core.ActivityPoint, 0, len(years))
	for _, y := range years {
		t := byYear[y]
		series = append(series, core.ActivityPoint{
			Label: fmt.Sprintf("%d", y),
			Owed:  core.Money{Rupiah: t.owed},
			Lent:  core.Money{Rupiah: t.lent},
		})
	}
	return series
}

// BucketByWeek groups amounts by ISO week, keeping the most recent weeksBack
// distinct weeks present, oldest first.
func BucketByWeek(debts []core.Debt, weeksBack int) []core.ActivityPoint {
	if weeksBack <= 0 {
		return nil
	}
	type totals struct{ owed, lent int64 }
	byWeek := make(map[int]*totals) // key: year*100 + ISO week
	for _, d := range debts {
		if d.Date.IsZero() {
			continue
		}
		y, w := d.Date.ISOWeek()
		key := y*100 + w
		t := byWeek[key]
		if t == nil {
			t = &totals{}
			byWeek[key] = t
		}
		if d.Kind.IsOwed() {
			t.owed += d.Amount.Rupiah
		} else {
			t.lent += d.Amount.Rupiah
		}
	}
	keys := make([]int, 0, len(byWeek))
	for k := range byWeek {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	if len(keys) > weeksBack {
		keys = keys[len(keys)-weeksBack:]
	}
	series := make([]core.ActivityPoint, 0, len(keys))
	for _, k := range keys {
		t := byWeek[k]
		series = append(series, core.ActivityPoint{
			Label: fmt.Sprintf("W%02d", k%100),
			Owed:  core.Money{Rupiah: t.owed},
			Lent:  core.Money{Rupiah: t.lent},
		})
	}
	return series
}

// BucketByMonthBalance computes the running signed balance (lent positive,
// owed negative) at the end of each of the trailing monthsBack calendar
// months, ending at the latest dated record. Months with no activity carry
// the previous balance forward: the series reads like an account balance,
// not a per-period delta. Activity older than the window still contributes
// to the opening balance.
func BucketByMonthBalance(debts []core.Debt, monthsBack int) []core.BalancePoint {
	if monthsBack <= 0 {
		return nil
	}
	type entry struct {
		month  time.Time // first of month
		amount int64
	}
	var entries []entry
	var latest time.Time
	for _, d := range debts {
		if d.Date.IsZero() {
			continue
		}
		amt := d.Amount.Rupiah
		if d.Kind.IsOwed() {
			amt = -amt
		}
		m := firstOfMonth(d.Date)
		entries = append(entries, entry{month: m, amount: amt})
		if m.After(latest) {
			latest = m
		}
	}
	if len(entries) == 0 {
		return nil
	}

	start := latest.AddDate(0, -(monthsBack - 1), 0)

	// Opening balance from everything before the window.
	var balance int64
	deltas := make(map[time.Time]int64)
	for _, e := range entries {
		if e.month.Before(start) {
			balance += e.amount
		} else {
			deltas[e.month] += e.amount
		}
	}

	series := make([]core.BalancePoint, 0, monthsBack)
	for m := start; !m.After(latest); m = m.AddDate(0, 1, 0) {
		balance += deltas[m]
		series = append(series, core.BalancePoint{
			Label:   m.Format("Jan"),
			Balance: core.Money{Rupiah: balance},
		})
	}
	return series
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
