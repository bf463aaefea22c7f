package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
	"github.com/iwvelando/deposit-calculator/internal/input"
	"github.com/iwvelando/deposit-calculator/internal/store"
)

type deleteCmd struct {
	app        *App
	collection string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a saved record by id" }
func (*deleteCmd) Usage() string {
	return `delete -collection investments|taxes|dates <id>:
  Removes the record with the given id from the collection.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.collection, "collection", "investments", "collection: investments, taxes, dates")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(c.app.Err, "delete takes exactly one id")
		return subcommands.ExitUsageError
	}
	id, err := strconv.ParseInt(f.Arg(0), 10, 64)
	if err != nil {
		return c.app.fail("cli.delete", fmt.Errorf("%w: invalid id %q", input.ErrValidation, f.Arg(0)))
	}
	coll, err := c.lifecycle()
	if err != nil {
		return c.app.fail("cli.delete", err)
	}

	removed, err := coll.RemoveByID(id)
	if err != nil {
		return c.app.fail("cli.delete", err)
	}
	if !removed {
		fmt.Fprintf(c.app.Out, "No existe un registro con id %d\n", id)
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(c.app.Out, "Registro %d eliminado\n", id)
	return subcommands.ExitSuccess
}

func (c *deleteCmd) lifecycle() (store.Lifecycle, error) {
	key, err := collectionKey(c.collection)
	if err != nil {
		return nil, err
	}
	return c.app.Store.Collection(key)
}

type clearCmd struct {
	app *App
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete every record of a collection" }
func (*clearCmd) Usage() string {
	return `clear [-yes] investments|taxes|dates:
  Asks for confirmation and empties the collection.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "skip the confirmation prompt")
}

func (c *clearCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(c.app.Err, "clear takes exactly one collection")
		return subcommands.ExitUsageError
	}
	key, err := collectionKey(f.Arg(0))
	if err != nil {
		return c.app.fail("cli.clear", err)
	}
	coll, err := c.app.Store.Collection(key)
	if err != nil {
		return c.app.fail("cli.clear", err)
	}

	confirm := promptConfirmer(c.app.In, c.app.Out)
	if c.yes {
		confirm = store.Confirmed
	}
	cleared, err := coll.Clear(confirm)
	if err != nil {
		return c.app.fail("cli.clear", err)
	}
	if !cleared {
		fmt.Fprintln(c.app.Out, "Operación cancelada")
		return subcommands.ExitSuccess
	}
	fmt.Fprintln(c.app.Out, "Historial eliminado")
	return subcommands.ExitSuccess
}
