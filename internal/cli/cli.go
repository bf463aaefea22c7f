// Package cli implements the deposit-calculator subcommands.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"
	"github.com/iwvelando/deposit-calculator/internal/config"
	"github.com/iwvelando/deposit-calculator/internal/input"
	"github.com/iwvelando/deposit-calculator/internal/store"
	"github.com/iwvelando/deposit-calculator/internal/tablesort"
	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"github.com/iwvelando/deposit-calculator/pkg/output"
	"go.uber.org/zap"
)

// App is what every command shares.
type App struct {
	Store        *store.Store
	Config       *config.Configuration
	Logger       *zap.Logger
	OutputFormat string
	Version      string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Register adds every command to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&investCmd{app: app}, "investments")
	c.Register(&investmentsCmd{app: app}, "investments")
	c.Register(&filtersCmd{app: app}, "investments")

	c.Register(&taxCmd{app: app}, "4x1000")
	c.Register(&taxesCmd{app: app}, "4x1000")

	c.Register(&dateCmd{app: app}, "dates")
	c.Register(&datesCmd{app: app}, "dates")
	c.Register(&previewCmd{app: app}, "dates")

	c.Register(&deleteCmd{app: app}, "records")
	c.Register(&clearCmd{app: app}, "records")

	c.Register(&serveCmd{app: app}, "server")
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) markdownStyle() string {
	if a.Config == nil {
		return constants.DefaultMarkdownStyle
	}
	return a.Config.Output.MarkdownStyle
}

func (a *App) defaultWithholding() float64 {
	if a.Config == nil || a.Config.Records.DefaultWithholdingRate <= 0 {
		return constants.DefaultWithholdingRate
	}
	return a.Config.Records.DefaultWithholdingRate
}

// fail reports err and maps rejected input to a usage error.
func (a *App) fail(op string, err error) subcommands.ExitStatus {
	fmt.Fprintln(a.Err, err)
	if errors.Is(err, input.ErrValidation) || errors.Is(err, store.ErrNegativeDays) || errors.Is(err, store.ErrMissingBaseDate) {
		return subcommands.ExitUsageError
	}
	a.logger().Error("command failed",
		zap.String("op", op),
		zap.Error(err),
	)
	return subcommands.ExitFailure
}

// render writes a table sorted by column (when >= 0) in the configured format.
func (a *App) render(op, title string, t tablesort.Table, column int, order string) subcommands.ExitStatus {
	if column >= 0 {
		dir := tablesort.Ascending
		if strings.EqualFold(order, "desc") {
			dir = tablesort.Descending
		}
		sorted, err := t.Sorted(column, dir)
		if err != nil {
			return a.fail(op, fmt.Errorf("%w: %v", input.ErrValidation, err))
		}
		t = sorted
	}
	if err := output.Write(a.Out, a.OutputFormat, title, t, a.markdownStyle()); err != nil {
		return a.fail(op, err)
	}
	return subcommands.ExitSuccess
}

// details prints label/value pairs, one per line.
func (a *App) details(pairs ...string) {
	width := 0
	for i := 0; i < len(pairs); i += 2 {
		if n := len([]rune(pairs[i])); n > width {
			width = n
		}
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		label := pairs[i] + ":"
		fmt.Fprintf(a.Out, "%-*s %s\n", width+1, label, pairs[i+1])
	}
}

// collectionKey resolves a user-facing collection name to its storage key.
func collectionKey(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "investments", "inversiones", constants.InvestmentsKey:
		return constants.InvestmentsKey, nil
	case "taxes", "tax", "4x1000", strings.ToLower(constants.TaxCalcsKey):
		return constants.TaxCalcsKey, nil
	case "dates", "fechas", strings.ToLower(constants.DateOffsetCalcKey):
		return constants.DateOffsetCalcKey, nil
	}
	return "", fmt.Errorf("%w: unknown collection %q (investments, taxes, dates)", input.ErrValidation, name)
}

// promptConfirmer asks on out and reads a yes/no answer from in.
func promptConfirmer(in io.Reader, out io.Writer) store.Confirmer {
	return store.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [s/N]: ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		return input.Flag(line)
	})
}
