package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/mmynk/billdesk/internal/catalog"
	"github.com/mmynk/billdesk/internal/renderer"
)

type catalogCmd struct{ app *App }

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "list the products that can be sold" }
func (*catalogCmd) Usage() string {
	return `billdesk catalog

  Prints the fixed product catalog with unit prices.
`
}
func (*catalogCmd) SetFlags(*flag.FlagSet) {}

func (c *catalogCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := c.app.formatter()
	if err != nil {
		return c.app.fail("catalog", err)
	}
	c.app.printMarkdown(renderer.Catalog(catalog.Products(), r))
	return subcommands.ExitSuccess
}

type sellCmd struct {
	app      *App
	customer string
	export   bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "save a bill in one go" }
func (*sellCmd) Usage() string {
	return `billdesk sell -customer <name> [-export] <product>=<qty>...

  Builds a cart from the arguments and saves it as a bill. Product names
  with spaces must be quoted, e.g. "Gaming Console=1".
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.customer, "customer", "", "Customer name (required).")
	f.BoolVar(&c.export, "export", false, "Also write the PDF invoice.")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(c.app.Err, "Error: at least one <product>=<qty> is required")
		return subcommands.ExitUsageError
	}

	e, err := c.app.open()
	if err != nil {
		return c.app.fail("open store", err)
	}
	defer e.Close()

	s := c.app.session(e)
	for _, arg := range f.Args() {
		product, qty, ok := strings.Cut(arg, "=")
		if !ok {
			qty = "1"
		}
		if _, err := s.AddToCart(product, qty); err != nil {
			return c.app.fail("add to cart", err)
		}
	}

	bill, err := s.Save(ctx, c.customer)
	if err != nil {
		return c.app.fail("save bill", err)
	}
	fmt.Fprintf(c.app.Out, "Bill #%d saved successfully. Total: %s\n", bill.ID, e.format(bill.Total))

	if c.export {
		path, err := s.Export(ctx)
		if err != nil {
			return c.app.fail("export invoice", err)
		}
		fmt.Fprintf(c.app.Out, "Invoice saved as: %s\n", path)
	}
	return subcommands.ExitSuccess
}

type billsCmd struct{ app *App }

func (*billsCmd) Name() string     { return "bills" }
func (*billsCmd) Synopsis() string { return "list previous bills, most recent first" }
func (*billsCmd) Usage() string {
	return `billdesk bills

  Prints every saved bill with its customer, date and total.
`
}
func (*billsCmd) SetFlags(*flag.FlagSet) {}

func (c *billsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := c.app.open()
	if err != nil {
		return c.app.fail("open store", err)
	}
	defer e.Close()

	bills, err := e.svc.ListBills(ctx)
	if err != nil {
		return c.app.fail("load bills", err)
	}
	c.app.printMarkdown(renderer.Bills(bills, e.format))
	return subcommands.ExitSuccess
}

type showCmd struct {
	app *App
	id  int64
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show one bill with its items" }
func (*showCmd) Usage() string {
	return `billdesk show -id <bill id>
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Bill ID (required).")
}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 {
		fmt.Fprintln(c.app.Err, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	e, err := c.app.open()
	if err != nil {
		return c.app.fail("open store", err)
	}
	defer e.Close()

	detail, err := e.svc.GetBill(ctx, c.id)
	if err != nil {
		return c.app.fail("load bill", err)
	}
	c.app.printMarkdown(renderer.Bill(detail.Bill, detail.Items, e.format))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	app *App
	id  int64
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the PDF invoice of a bill" }
func (*exportCmd) Usage() string {
	return `billdesk export [-id <bill id>]

  Writes invoices/invoice_<id>.pdf, replacing any earlier export of the same
  bill. Without -id the most recent bill is exported.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Bill ID. Defaults to the most recent bill.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := c.app.open()
	if err != nil {
		return c.app.fail("open store", err)
	}
	defer e.Close()

	s := c.app.session(e)
	if c.id > 0 {
		if _, err := s.Select(ctx, c.id); err != nil {
			return c.app.fail("select bill", err)
		}
	}
	path, err := s.Export(ctx)
	if err != nil {
		return c.app.fail("export invoice", err)
	}
	fmt.Fprintf(c.app.Out, "Invoice saved as: %s\n", path)
	return subcommands.ExitSuccess
}

type openCmd struct {
	app *App
	id  int64
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "open the PDF invoice of a bill in the default viewer" }
func (*openCmd) Usage() string {
	return `billdesk open [-id <bill id>]

  Opens the invoice, exporting it first if it does not exist yet. Without -id
  the most recent bill is used.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Bill ID. Defaults to the most recent bill.")
}

func (c *openCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := c.app.open()
	if err != nil {
		return c.app.fail("open store", err)
	}
	defer e.Close()

	s := c.app.session(e)
	if c.id > 0 {
		if _, err := s.Select(ctx, c.id); err != nil {
			return c.app.fail("select bill", err)
		}
	}
	path, err := s.Open(ctx)
	if err != nil {
		return c.app.fail("open invoice", err)
	}
	fmt.Fprintf(c.app.Out, "Opened %s\n", path)
	return subcommands.ExitSuccess
}
