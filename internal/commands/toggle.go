package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/task"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct {
	filter string
}

// SetFilter sets the view positions are counted in (for testing).
func (c *ToggleCmd) SetFilter(name string) {
	c.filter = name
}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task between active and completed" }
func (c *ToggleCmd) Usage() string     { return "ltask toggle [--filter <filter>] <ref>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, mgr *task.Manager, args []string, out, errOut io.Writer) int {
	return runRef(ctx, cfg, mgr, c.filter, args, out, errOut, mgr.Toggle)
}

// runRef resolves a task reference and applies op to it. The shared
// implementation for toggle and rm.
func runRef(ctx context.Context, cfg *config.Config, mgr *task.Manager, filter string, args []string, out, errOut io.Writer, op func(context.Context, int64) (bool, error)) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	f, ok := parseFilterFlag(errOut, filter)
	if !ok {
		return exitcode.UserError
	}

	id, err := ref.Resolve(mgr, f)
	if err != nil {
		if errors.Is(err, task.ErrOutOfRange) {
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Position)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Unknown ids are a silent no-op.
	found, err := op(ctx, id)
	if err != nil {
		return storageError(errOut, err)
	}
	if found && !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
