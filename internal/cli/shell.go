package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/mmynk/billdesk/internal/catalog"
	"github.com/mmynk/billdesk/internal/pos"
	"github.com/mmynk/billdesk/internal/renderer"
)

const prompt = "billdesk> "

const shellHelp = `Commands:
  add <product> [qty]   add a catalog product to the cart (qty defaults to 1)
  remove <n>            remove cart line n
  cart                  show the cart
  clear                 empty the cart
  save <customer>       save the cart as a bill
  bills                 list previous bills
  select <id>           use bill <id> for export and open
  unselect              go back to the most recent bill
  items <id>            show one bill with its items
  export                write the PDF invoice of the current bill
  open                  open the invoice in the default viewer
  catalog               list products
  status                show the session state
  help                  show this help
  quit                  leave the shell
`

var errQuit = errors.New("quit")

type shellCmd struct{ app *App }

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "interactive cart and billing session" }
func (*shellCmd) Usage() string {
	return `billdesk shell

  Starts an interactive session: build a cart, save it as a bill, browse
  previous bills and export invoices. Type "help" inside the shell.
`
}
func (*shellCmd) SetFlags(*flag.FlagSet) {}

func (c *shellCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := c.app.open()
	if err != nil {
		return c.app.fail("open store", err)
	}
	defer e.Close()

	sh := &shell{app: c.app, env: e, session: c.app.session(e)}
	if err := sh.run(ctx); err != nil {
		return c.app.fail("shell", err)
	}
	return subcommands.ExitSuccess
}

type shell struct {
	app     *App
	env     *env
	session *pos.Session
}

// run reads commands until quit or end of input. A failing command prints
// its error and the shell carries on.
func (sh *shell) run(ctx context.Context) error {
	out := sh.app.Out
	fmt.Fprintf(out, "%s billing. Type \"help\" for commands.\n", sh.app.Config.ShopName)

	scanner := bufio.NewScanner(sh.app.In)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		err := sh.dispatch(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(sh.app.Err, "Error: %v\n", err)
		}
		fmt.Fprint(out, prompt)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func (sh *shell) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	out := sh.app.Out
	format := sh.env.format

	switch cmd {
	case "quit", "exit":
		return errQuit

	case "help", "?":
		fmt.Fprint(out, shellHelp)

	case "catalog", "products":
		sh.app.printMarkdown(renderer.Catalog(catalog.Products(), format))

	case "add":
		product, qty := splitQuantity(args)
		l, err := sh.session.AddToCart(product, qty)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %s × %d → %s\n", l.Product, l.Quantity, format(l.Subtotal()))

	case "remove", "rm":
		n, err := argInt(args, "remove <n>")
		if err != nil {
			return err
		}
		l, err := sh.session.Cart().Remove(int(n) - 1)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %s × %d\n", l.Product, l.Quantity)

	case "cart":
		c := sh.session.Cart()
		sh.app.printMarkdown(renderer.Cart(c.Lines(), c.Total(), format))

	case "clear":
		sh.session.Cart().Clear()
		fmt.Fprintln(out, "Cart cleared.")

	case "save":
		bill, err := sh.session.Save(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Bill #%d saved successfully. Total: %s\n", bill.ID, format(bill.Total))

	case "bills", "history":
		bills, err := sh.session.History(ctx)
		if err != nil {
			return fmt.Errorf("failed to load bills: %w", err)
		}
		sh.app.printMarkdown(renderer.Bills(bills, format))

	case "select":
		id, err := argInt(args, "select <id>")
		if err != nil {
			return err
		}
		detail, err := sh.session.Select(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Selected bill #%d (%s, %s)\n", detail.Bill.ID, detail.Bill.Customer, format(detail.Bill.Total))

	case "unselect":
		sh.session.Unselect()
		fmt.Fprintln(out, "Using the most recent bill.")

	case "items", "show":
		id, err := argInt(args, "items <id>")
		if err != nil {
			return err
		}
		detail, err := sh.env.svc.GetBill(ctx, id)
		if err != nil {
			return err
		}
		sh.app.printMarkdown(renderer.Bill(detail.Bill, detail.Items, format))

	case "export":
		path, err := sh.session.Export(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate invoice: %w", err)
		}
		fmt.Fprintf(out, "Invoice saved as: %s\n", path)

	case "open":
		path, err := sh.session.Open(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Opened %s\n", path)

	case "status":
		fmt.Fprintf(out, "State: %s, cart lines: %d", sh.session.State(), sh.session.Cart().Len())
		if b := sh.session.Selected(); b != nil {
			fmt.Fprintf(out, ", selected bill: #%d", b.ID)
		}
		fmt.Fprintln(out)

	default:
		return fmt.Errorf("unknown command %q, type \"help\"", cmd)
	}
	return nil
}

// splitQuantity treats a trailing numeric-looking word as the quantity so
// product names may contain spaces: "add Gaming Console 2".
func splitQuantity(args []string) (product, qty string) {
	if n := len(args); n >= 2 && looksNumeric(args[n-1]) {
		return strings.Join(args[:n-1], " "), args[n-1]
	}
	return strings.Join(args, " "), "1"
}

func looksNumeric(s string) bool {
	c := s[0]
	return (c >= '0' && c <= '9') || c == '-' || c == '+'
}

func argInt(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return n, nil
}
