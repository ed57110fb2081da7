package cli

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"github.com/mmynk/billdesk/internal/server"
)

type serveCmd struct {
	app  *App
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve bill history and invoices over HTTP" }
func (*serveCmd) Usage() string {
	return `billdesk serve [-addr <host:port>]

  Starts a read-only HTTP server:

    GET /api/products
    GET /api/bills
    GET /api/bills/{id}
    GET /api/bills/{id}/invoice.pdf
    GET /metrics
    GET /healthz
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to BILLDESK_HTTP_ADDR.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	addr := c.addr
	if addr == "" {
		addr = c.app.Config.HTTPAddr
	}

	e, err := c.app.open()
	if err != nil {
		return c.app.fail("open store", err)
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, addr, server.NewRouter(e.svc, e.metrics)); err != nil {
		return c.app.fail("serve", err)
	}
	return subcommands.ExitSuccess
}
