// Command watch is the terminal consumer of the reservation engine. It
// mounts the active-reservations view against the store, re-derives row
// status on the poll cadence, and follows the engine's redirect to the
// history surface once lapsed rows have been reconciled server-side.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkhub/internal/client"
	"parkhub/internal/history"
	"parkhub/internal/logger"
	"parkhub/internal/poller"
	"parkhub/internal/stats"
	"parkhub/internal/status"
	"parkhub/internal/view"
)

func main() {
	var (
		server   = flag.String("server", "http://localhost:8080", "store base URL")
		token    = flag.String("token", "", "bearer token (skips login)")
		email    = flag.String("email", "", "login email")
		password = flag.String("password", "", "login password")
		mode     = flag.String("view", "active", "view to mount: active | history | stats")
		filter   = flag.String("filter", "all", "history filter: all | cancelled | expired")
		interval = flag.Duration("interval", poller.DefaultInterval, "active view poll interval")
		debounce = flag.Duration("debounce", view.DefaultDebounce, "expiry reconciliation debounce")
		once     = flag.Bool("once", false, "render a single pass and exit")
		logLevel = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	log := logger.New(*logLevel, true)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cl := client.New(*server, *token)
	if *token == "" && *email != "" {
		if _, err := cl.Login(ctx, *email, *password); err != nil {
			fmt.Fprintln(os.Stderr, "login failed:", err)
			os.Exit(1)
		}
	}

	var err error
	switch *mode {
	case "active":
		err = runActive(ctx, cl, log, *interval, *debounce, *filter, *once)
	case "history":
		err = runHistory(ctx, cl, *filter)
	case "stats":
		err = runStats(ctx, cl)
	default:
		err = fmt.Errorf("unknown view %q", *mode)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runActive(ctx context.Context, cl *client.Client, log logger.Logger, interval, debounce time.Duration, filter string, once bool) error {
	redirected := make(chan struct{})

	var av *view.ActiveView
	coord := view.NewCoordinator(debounce, log,
		func(ctx context.Context) error { return av.Load(ctx) },
		func() { close(redirected) },
	)
	av = view.NewActive(cl.ActiveReservations, poller.SystemClock(), coord, log)
	defer av.Close()

	if err := av.Load(ctx); err != nil {
		return fmt.Errorf("loading active reservations: %w", err)
	}
	renderActive(av)

	if once {
		return nil
	}

	p := poller.New(interval, poller.SystemClock(), log, func(now time.Time) {
		av.Tick(ctx, now)
		renderActive(av)
	})
	p.Start(ctx)
	defer p.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// SIGHUP is the manual refresh: re-derive and re-render out of band.
	refreshCh := make(chan os.Signal, 1)
	signal.Notify(refreshCh, syscall.SIGHUP)

	for {
		select {
		case <-sigCh:
			return nil
		case <-refreshCh:
			if err := av.Load(ctx); err != nil {
				log.Warn("manual refresh failed", logger.Error(err))
			}
			p.Refresh()
		case <-redirected:
			// A lapsed row was reconciled with the store; the active surface
			// unmounts and the viewer lands on history.
			fmt.Println("\nReservation ended; showing history.")
			return runHistory(ctx, cl, filter)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func renderActive(av *view.ActiveView) {
	rows := av.Rows()
	tick := av.TickTime().Format("15:04:05")

	fmt.Printf("\n== My Reservations (as of %s) ==\n", tick)
	if len(rows) == 0 {
		fmt.Println("No active reservations.")
		return
	}
	for _, r := range rows {
		slot := r.SlotInfo()
		code, zone, slotType := "(no slotCode)", "-", "-"
		if slot != nil {
			code, zone, slotType = slot.SlotCode, slot.Zone, status.TypeLabel(slot.Type)
		}

		badge := ""
		switch {
		case !r.Derived.Valid:
			badge = "UNKNOWN"
		case r.Derived.Expired:
			badge = "EXPIRED"
		case r.Derived.Ongoing:
			badge = "ONGOING"
		}

		booked, remaining := "-", "-"
		if r.Derived.Valid {
			booked = status.FormatDurationMinutes(r.Derived.DurationMinutes)
			if r.Derived.Expired {
				remaining = "time is up"
			} else {
				remaining = status.FormatDurationMinutes(r.Derived.RemainingMinutes)
			}
		}

		fmt.Printf("%-10s %s  zone=%s type=%s\n", code, badge, zone, slotType)
		fmt.Printf("           start=%s end=%s booked=%s remaining=%s\n",
			r.StartTime, r.EndTime, booked, remaining)
		if !r.CanCancel() {
			fmt.Println("           cancel disabled: this reservation already ended")
		}
	}
}

func runHistory(ctx context.Context, cl *client.Client, filter string) error {
	list, err := cl.Reservations(ctx)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	records := history.Apply(list, history.ParseFilter(filter))
	fmt.Printf("\n== History (%s) ==\n", history.ParseFilter(filter))
	if len(records) == 0 {
		fmt.Println("No history yet.")
		return nil
	}
	for _, rec := range records {
		slot := rec.SlotInfo()
		code, zone := "(no slotCode)", "-"
		if slot != nil {
			code, zone = slot.SlotCode, slot.Zone
		}
		fmt.Printf("%-10s %-9s zone=%s booked=%s start=%s end=%s\n",
			code, rec.StatusNorm, zone, rec.FormatBooked(), rec.StartTime, rec.EndTime)
	}
	return nil
}

func runStats(ctx context.Context, cl *client.Client) error {
	payload, err := cl.AdminStats(ctx)
	if err != nil {
		return fmt.Errorf("loading stats: %w", err)
	}

	fmt.Println("\n== Admin Dashboard ==")
	for _, m := range stats.MetricLabels {
		fmt.Printf("%-15s %s\n", m.Label, stats.ResolveSummary(payload.Summary, m.Metric))
	}

	fmt.Println("\nPeak Hours:")
	if hours := stats.PeakHoursSeries(payload.PeakHours); len(hours) == 0 {
		fmt.Println("  No data")
	} else {
		for _, b := range hours {
			fmt.Printf("  %02d:00  %d\n", b.Hour, b.Count)
		}
	}

	fmt.Println("\nTop Zones:")
	if zones := stats.TopZonesSeries(payload.TopZones); len(zones) == 0 {
		fmt.Println("  No data")
	} else {
		for _, b := range zones {
			fmt.Printf("  %-6s %d\n", b.Zone, b.Count)
		}
	}

	fmt.Println("\nBy Day of Week:")
	if days := stats.WeekdaySeries(payload.ByDayOfWeek); len(days) == 0 {
		fmt.Println("  No data")
	} else {
		for _, d := range days {
			fmt.Printf("  %-4s %d\n", d.Day, d.Count)
		}
	}
	return nil
}
