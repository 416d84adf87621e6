package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"utangku/internal/aggregate"
	"utangku/internal/api"
	"utangku/internal/config"
	"utangku/internal/core"
	"utangku/internal/dashboard"
	"utangku/internal/ledger"
	"utangku/internal/log"
	"utangku/internal/session"
)

type app struct {
	cfg      *config.Config
	logger   *log.Logger
	sessions *session.Store
	client   *api.Client
	ledger   *ledger.Collection
	stdout   io.Writer
}

func (a *app) usage() {
	fmt.Fprintln(a.stdout, `Usage: utangku <command> [flags]

Commands:
  signin     Sign in and store the session token
  signup     Register a new account
  signout    Discard the stored session token
  add        Record a new debt or loan
  list       List all records
  update     Edit an existing record
  toggle     Flip a record's settled status
  delete     Remove a record (asks for confirmation)
  stats      Show owed/lent/net totals
  dashboard  Render the overview and chart files
  settings   Show or update the account profile

Run 'utangku <command> -h' for command flags.`)
}

func (a *app) run(command string, args []string) error {
	ctx := context.Background()
	switch command {
	case "signin":
		return a.signin(ctx, args)
	case "signup":
		return a.signup(ctx, args)
	case "signout":
		return a.signout()
	case "add":
		return a.add(ctx, args)
	case "list":
		return a.list(ctx)
	case "update":
		return a.update(ctx, args)
	case "toggle":
		return a.toggle(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "stats":
		return a.stats(ctx)
	case "dashboard":
		return a.dashboard(ctx)
	case "settings":
		return a.settings(ctx, args)
	case "help", "-h", "--help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) signin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}
	if err := a.client.SignIn(ctx, *email, *password); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Signed in.")
	return nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *name == "" || *email == "" || *password == "" {
		return fmt.Errorf("-name, -email and -password are required")
	}
	if err := a.client.SignUp(ctx, *name, *email, *password); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Account created and signed in.")
	return nil
}

func (a *app) signout() error {
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Signed out.")
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "counterparty name")
	kind := fs.String("kind", string(core.Utang), "Utang (owed) or Meminjamkan (lent)")
	method := fs.String("method", "Cash", "payment method")
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	amount := fs.String("amount", "", "amount in rupiah, dots allowed (1.500.000)")
	fs.Parse(args)

	rupiah, err := core.ParseAmount(*amount)
	if err != nil {
		return fmt.Errorf("amount %q: %w", *amount, err)
	}
	when, err := core.ParseInputDate(*date)
	if err != nil {
		return fmt.Errorf("date %q: %w", *date, err)
	}

	if err := a.ledger.Refresh(ctx); err != nil {
		return err
	}
	created, err := a.ledger.Create(ctx, core.Debt{
		Name:   *name,
		Kind:   core.Kind(*kind),
		Method: *method,
		Date:   when,
		Amount: core.Money{Rupiah: rupiah},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Recorded #%d: %s %s (%s)\n",
		created.ID, created.Name, core.FormatRupiah(created.Amount.Rupiah), created.Kind)
	a.printStats(a.ledger.Stats())
	return nil
}

func (a *app) list(ctx context.Context) error {
	if err := a.ledger.Refresh(ctx); err != nil {
		return err
	}
	debts := a.ledger.Debts()
	if len(debts) == 0 {
		fmt.Fprintln(a.stdout, "No records.")
		return nil
	}
	fmt.Fprintf(a.stdout, "%-6s %-3s %-20s %-12s %-10s %-12s %s\n",
		"ID", "", "Name", "Kind", "Method", "Date", "Amount")
	for _, d := range debts {
		mark := " "
		if d.IsChecked {
			mark = "x"
		}
		date := ""
		if !d.Date.IsZero() {
			date = d.Date.Format(core.DateOnlyLayout)
		}
		fmt.Fprintf(a.stdout, "%-6d [%s] %-20s %-12s %-10s %-12s %s\n",
			d.ID, mark, d.Name, d.Kind, d.Method, date,
			core.FormatSigned(d.Amount.Rupiah, d.Kind.IsOwed()))
	}
	return nil
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int64("id", 0, "record id")
	name := fs.String("name", "", "counterparty name (unchanged if empty)")
	method := fs.String("method", "", "payment method (unchanged if empty)")
	date := fs.String("date", "", "date (unchanged if empty)")
	amount := fs.String("amount", "", "amount (unchanged if empty)")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("-id is required")
	}
	if err := a.ledger.Refresh(ctx); err != nil {
		return err
	}
	current, err := a.ledger.Find(*id)
	if err != nil {
		return err
	}
	if *name != "" {
		current.Name = *name
	}
	if *method != "" {
		current.Method = *method
	}
	if *date != "" {
		when, err := core.ParseInputDate(*date)
		if err != nil {
			return fmt.Errorf("date %q: %w", *date, err)
		}
		current.Date = when
	}
	if *amount != "" {
		rupiah, err := core.ParseAmount(*amount)
		if err != nil {
			return fmt.Errorf("amount %q: %w", *amount, err)
		}
		current.Amount = core.Money{Rupiah: rupiah}
	}

	updated, err := a.ledger.Update(ctx, *id, current)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Updated #%d.\n", updated.ID)
	a.printStats(a.ledger.Stats())
	return nil
}

func (a *app) toggle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("toggle", flag.ExitOnError)
	id := fs.Int64("id", 0, "record id")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("-id is required")
	}
	if err := a.ledger.Refresh(ctx); err != nil {
		return err
	}
	toggled, err := a.ledger.Toggle(ctx, *id)
	if err != nil {
		return err
	}
	state := "unsettled"
	if toggled.IsChecked {
		state = "settled"
	}
	fmt.Fprintf(a.stdout, "Record #%d is now %s.\n", toggled.ID, state)
	a.printStats(a.ledger.Stats())
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "record id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("-id is required")
	}
	if err := a.ledger.Refresh(ctx); err != nil {
		return err
	}
	d, err := a.ledger.Find(*id)
	if err != nil {
		return err
	}

	confirmed := *yes
	if !confirmed {
		fmt.Fprintf(a.stdout, "Delete #%d (%s, %s)? [y/N] ",
			d.ID, d.Name, core.FormatRupiah(d.Amount.Rupiah))
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		confirmed = answer == "y" || answer == "yes"
	}
	if err := a.ledger.Delete(ctx, *id, confirmed); err != nil {
		if errors.Is(err, ledger.ErrNotConfirmed) {
			fmt.Fprintln(a.stdout, "Aborted.")
			return nil
		}
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted #%d.\n", *id)
	a.printStats(a.ledger.Stats())
	return nil
}

func (a *app) stats(ctx context.Context) error {
	stats, err := a.client.Stats(ctx)
	if err != nil {
		return err
	}
	a.printStats(stats)
	return nil
}

func (a *app) settings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	fullName := fs.String("full-name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "new password")
	dateOfBirth := fs.String("date-of-birth", "", "date of birth (YYYY-MM-DD)")
	address := fs.String("address", "", "street address")
	city := fs.String("city", "", "city")
	postalCode := fs.String("postal-code", "", "postal code")
	country := fs.String("country", "", "country")
	fs.Parse(args)

	update := api.ProfileUpdate{
		FullName:    *fullName,
		Email:       *email,
		Password:    *password,
		DateOfBirth: *dateOfBirth,
		Address:     *address,
		City:        *city,
		PostalCode:  *postalCode,
		Country:     *country,
	}
	if update != (api.ProfileUpdate{}) {
		profile, err := a.client.UpdateUserSettings(ctx, update)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Settings saved.")
		a.printProfile(profile)
		return nil
	}

	profile, err := a.client.UserSettings(ctx)
	if err != nil {
		return err
	}
	a.printProfile(profile)
	return nil
}

func (a *app) dashboard(ctx context.Context) error {
	loader := dashboard.NewLoader(a.client, dashboard.Config{
		YearsBack:  a.cfg.YearsBack,
		MonthsBack: a.cfg.MonthsBack,
		TTL:        a.cfg.CacheTTL,
		Logger:     a.logger.WithComponent(log.ComponentDashboard),
	})
	page := loader.Load(ctx)

	// Any widget can fail alone, but a dead session means none of them
	// loaded and there is nothing worth rendering.
	if api.IsAuthError(page.Stats.Err) {
		return page.Stats.Err
	}

	a.fillFromLedger(ctx, &page)

	if page.Stats.OK() {
		a.printStats(page.Stats.Data)
	} else {
		a.widgetError("stats", page.Stats.Err)
	}

	fmt.Fprintln(a.stdout, "\nRecent transactions:")
	if page.Recent.OK() {
		recent := aggregate.Recent(page.Recent.Data, a.cfg.RecentLimit)
		if len(recent) == 0 {
			fmt.Fprintln(a.stdout, "  (none)")
		}
		for _, d := range recent {
			fmt.Fprintf(a.stdout, "  %-20s %s\n",
				d.Name, core.FormatSigned(d.Amount.Rupiah, d.Kind.IsOwed()))
		}
	} else {
		a.widgetError("recent", page.Recent.Err)
	}

	return a.renderCharts(page)
}

// weeksBack bounds the locally computed weekly series.
const weeksBack = 8

// fillFromLedger recomputes failed widgets from the raw record list, so a
// broken series endpoint degrades to local aggregation instead of an empty
// panel. Widgets the server answered keep the server's numbers.
func (a *app) fillFromLedger(ctx context.Context, page *dashboard.Page) {
	if page.Stats.OK() && page.Recent.OK() && page.Yearly.OK() && page.Weekly.OK() && page.Balance.OK() {
		return
	}
	if err := a.ledger.Refresh(ctx); err != nil {
		a.logger.Warn("Local aggregation fallback unavailable", log.FieldError, err.Error())
		return
	}
	debts := a.ledger.Debts()

	if !page.Stats.OK() {
		page.Stats = dashboard.Widget[core.Stats]{Data: a.ledger.Stats()}
	}
	if !page.Recent.OK() {
		page.Recent = dashboard.Widget[[]core.Debt]{Data: aggregate.Recent(debts, a.cfg.RecentLimit)}
	}
	if !page.Yearly.OK() {
		page.Yearly = dashboard.Widget[[]core.ActivityPoint]{Data: aggregate.BucketByYear(debts, a.cfg.YearsBack)}
	}
	if !page.Weekly.OK() {
		page.Weekly = dashboard.Widget[[]core.ActivityPoint]{Data: aggregate.BucketByWeek(debts, weeksBack)}
	}
	if !page.Balance.OK() {
		page.Balance = dashboard.Widget[[]core.BalancePoint]{Data: aggregate.BucketByMonthBalance(debts, a.cfg.MonthsBack)}
	}
}

func (a *app) printStats(stats core.Stats) {
	fmt.Fprintf(a.stdout, "Utang:   %s\nPiutang: %s\nTotal:   %s\n",
		core.FormatRupiah(stats.Owed.Rupiah),
		core.FormatRupiah(stats.Lent.Rupiah),
		core.FormatRupiah(stats.Net.Rupiah))
}

func (a *app) printProfile(p api.Profile) {
	rows := []struct{ label, value string }{
		{"Full name", p.FullName},
		{"Email", p.Email},
		{"Date of birth", p.DateOfBirth},
		{"Address", p.Address},
		{"City", p.City},
		{"Postal code", p.PostalCode},
		{"Country", p.Country},
	}
	for _, row := range rows {
		value := row.value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(a.stdout, "%-14s %s\n", row.label+":", value)
	}
}

func (a *app) widgetError(name string, err error) {
	fmt.Fprintf(a.stdout, "  %s unavailable: %v\n", name, err)
}
