package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/output"
	"ltask/internal/task"
)

// List output formats.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `ltask` (no args) and `ltask list`.
type ListCmd struct {
	filter string
	format string
}

// SetFilter sets the filter (for testing).
func (c *ListCmd) SetFilter(name string) {
	c.filter = name
}

// SetFormat sets the output format (for testing).
func (c *ListCmd) SetFormat(format string) {
	c.format = format
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "ltask list [--filter all|active|completed] [--format text|html|json]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.StringVar(&c.format, "format", FormatText, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, mgr *task.Manager, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	f, ok := parseFilterFlag(errOut, c.filter)
	if !ok {
		return exitcode.UserError
	}
	mgr.SetFilter(f)

	view := mgr.FilteredView()
	switch c.format {
	case "", FormatText:
		if cfg.Quiet {
			// Quiet mode keeps the task lines and drops the rest
			for i, t := range view {
				output.FormatTask(out, i+1, t)
			}
			return exitcode.Success
		}
		output.Text(out, view, f, mgr.CountSummary())
	case FormatHTML:
		if err := output.HTML(out, view, f, mgr.CountSummary()); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
	case FormatJSON:
		if err := output.JSON(out, view); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
	default:
		fmt.Fprintf(errOut, "error: invalid format: %s\n", c.format)
		return exitcode.UserError
	}
	return exitcode.Success
}
