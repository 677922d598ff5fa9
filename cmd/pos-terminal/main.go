// Command pos-terminal is the staff terminal: it signs in, keeps the session
// on disk, shows the live order board and prints kitchen notifications.
//
// Type "a" and Enter to acknowledge new orders, "q" to quit.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/pkg/client"
	"github.com/mesapos/restaurant-pos/pkg/logger"
	"github.com/mesapos/restaurant-pos/pkg/money"
	"github.com/mesapos/restaurant-pos/pkg/render"
)

var (
	apiFlag      = flag.String("api", envOr("POS_API", "http://localhost:8080"), "API base URL")
	userFlag     = flag.String("user", "", "sign in as this user (password from POS_PASSWORD)")
	sessionFlag  = flag.String("session", defaultSessionPath(), "session file")
	intervalFlag = flag.Duration("interval", client.DefaultPollInterval, "poll interval")
	currencyFlag = flag.String("currency", money.DefaultCurrency, "currency used to display totals")
	logoutFlag   = flag.Bool("logout", false, "forget the stored session and exit")
	verboseFlag  = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	level := "info"
	if *verboseFlag {
		level = "debug"
	}
	log := logger.New(logger.Options{Service: "pos-terminal", Level: level, Pretty: true, Output: os.Stderr})

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("pos-terminal")
	}
}

func run(log zerolog.Logger) error {
	session, err := client.NewSession(client.NewFileStore(*sessionFlag))
	if err != nil {
		return err
	}
	if *logoutFlag {
		return session.Logout()
	}

	api := client.New(*apiFlag, session, client.WithLogger(log))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *userFlag != "" {
		user, err := api.Login(ctx, *userFlag, os.Getenv("POS_PASSWORD"))
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		log.Info().Str("user", user.Username).Str("role", user.Role).Msg("signed in")
	}
	if !session.Authenticated() {
		return fmt.Errorf("not signed in: run with -user and POS_PASSWORD set")
	}

	alerter := client.AlerterFunc(func(kind client.AlertKind, msg string) {
		ev := log.Info()
		switch kind {
		case client.AlertError, client.AlertSessionExpired:
			ev = log.Warn()
		}
		ev.Str("kind", string(kind)).Msg(msg)
	})

	guard := client.NewAuthGuard(session, alerter, client.DefaultLogoutDelay, log)
	guard.Attach(api)
	// A forced logout ends the terminal session.
	session.OnLogout(cancel)

	board := newBoardPrinter(os.Stdout, render.NewBoundary("order-board", render.DefaultFallback, log), *currencyFlag)
	watcher := client.NewOrderWatcher(api, *intervalFlag, func(snap client.OrderSnapshot) {
		board.Print(ctx, snap)
	}, log)
	notifications := client.NewNotificationPoller(api, alerter, *intervalFlag, log)

	watcher.Start(ctx)
	notifications.Start(ctx)
	defer watcher.Stop()
	defer notifications.Stop()

	go readCommands(os.Stdin, watcher, cancel)

	<-ctx.Done()
	return nil
}

func readCommands(in io.Reader, watcher *client.OrderWatcher, quit func()) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		switch strings.TrimSpace(sc.Text()) {
		case "a":
			watcher.Acknowledge()
		case "q":
			quit()
			return
		}
	}
}

// boardPrinter draws one board at a time. The poll loop and the stdin
// acknowledgement both trigger redraws.
type boardPrinter struct {
	mu       sync.Mutex
	out      io.Writer
	boundary *render.Boundary
	draw     func(w io.Writer, snap client.OrderSnapshot) error
}

func newBoardPrinter(out io.Writer, boundary *render.Boundary, currency string) *boardPrinter {
	return &boardPrinter{
		out:      out,
		boundary: boundary,
		draw: func(w io.Writer, snap client.OrderSnapshot) error {
			return renderBoard(w, snap, currency, time.Now())
		},
	}
}

func (p *boardPrinter) Print(ctx context.Context, snap client.OrderSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.boundary.Render(ctx, p.out, func(w io.Writer) error {
		return p.draw(w, snap)
	})
}

func renderBoard(w io.Writer, snap client.OrderSnapshot, currency string, now time.Time) error {
	fmt.Fprintf(w, "\nOrders: %d active, %d pending", len(snap.Orders), snap.Pending)
	if snap.Badge > 0 {
		fmt.Fprintf(w, "  [%d new]", snap.Badge)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tCUSTOMER\tSTATUS\tITEMS\tTOTAL\tAGE")
	for _, o := range snap.Orders {
		items := 0
		for _, it := range o.Items {
			items += it.Quantity
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			o.TableNumber,
			orDash(o.CustomerName),
			o.Status,
			items,
			money.Format(o.Total, currency),
			now.Sub(o.CreatedAt).Truncate(time.Minute),
		)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "mesapos", "session.json")
}
