// Package cli implements the billdesk terminal commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"

	"github.com/mmynk/billdesk/internal/config"
	"github.com/mmynk/billdesk/internal/invoice"
	"github.com/mmynk/billdesk/internal/metrics"
	"github.com/mmynk/billdesk/internal/pos"
	"github.com/mmynk/billdesk/internal/renderer"
	"github.com/mmynk/billdesk/internal/service"
	"github.com/mmynk/billdesk/internal/storage/sqlite"
	"github.com/mmynk/billdesk/internal/viewer"
)

// App carries what every command needs. The zero value is not usable; build
// it with NewApp.
type App struct {
	Config config.Config
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Viewer viewer.Viewer
}

// NewApp returns an App wired to the process standard streams.
func NewApp(cfg config.Config) *App {
	return &App{
		Config: cfg,
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Viewer: viewer.System{},
	}
}

// Register adds all billdesk subcommands to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&shellCmd{app: app}, "sales")
	c.Register(&sellCmd{app: app}, "sales")
	c.Register(&catalogCmd{app: app}, "sales")

	c.Register(&billsCmd{app: app}, "history")
	c.Register(&showCmd{app: app}, "history")
	c.Register(&exportCmd{app: app}, "history")
	c.Register(&openCmd{app: app}, "history")

	c.Register(&serveCmd{app: app}, "server")
}

// env is the opened store and the services built on it.
type env struct {
	store   *sqlite.SQLiteStore
	svc     *service.BillService
	metrics *metrics.Metrics
	format  renderer.Formatter
}

func (a *App) open() (*env, error) {
	r, err := invoice.NewRenderer(a.Config.InvoiceDir, a.Config.ShopName, a.Config.Currency)
	if err != nil {
		return nil, err
	}
	store, err := sqlite.New(a.Config.DBPath)
	if err != nil {
		return nil, err
	}
	m := metrics.New()
	return &env{
		store:   store,
		svc:     service.NewBillService(store, r, m),
		metrics: m,
		format:  r.Format,
	}, nil
}

// formatter formats amounts without opening the store.
func (a *App) formatter() (renderer.Formatter, error) {
	r, err := invoice.NewRenderer(a.Config.InvoiceDir, a.Config.ShopName, a.Config.Currency)
	if err != nil {
		return nil, err
	}
	return r.Format, nil
}

func (e *env) Close() error { return e.store.Close() }

func (a *App) session(e *env) *pos.Session {
	return pos.NewSession(e.svc, a.Viewer)
}

// fail reports err the way every command does and returns ExitFailure.
func (a *App) fail(what string, err error) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "Error: %s: %v\n", what, err)
	return subcommands.ExitFailure
}

// printMarkdown renders md for the terminal, or prints it as plain text when
// output is not a terminal.
func (a *App) printMarkdown(md string) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if f, ok := a.Out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		fmt.Fprint(a.Out, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(a.Out, md)
		return
	}
	fmt.Fprint(a.Out, out)
}
