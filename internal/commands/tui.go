package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/task"
	"ltask/internal/ui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd implements the tui command.
type TuiCmd struct {
	filter string
}

func (c *TuiCmd) Name() string      { return "tui" }
func (c *TuiCmd) Aliases() []string { return []string{"ui"} }
func (c *TuiCmd) Synopsis() string  { return "Open the interactive task list" }
func (c *TuiCmd) Usage() string     { return "ltask tui [--filter <filter>]" }
func (c *TuiCmd) NeedsStore() bool  { return true }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, mgr *task.Manager, args []string, out, errOut io.Writer) int {
	f, ok := parseFilterFlag(errOut, c.filter)
	if !ok {
		return exitcode.UserError
	}
	if !ui.IsTTY(out) {
		fmt.Fprintln(errOut, "error: tui requires a terminal")
		return exitcode.UserError
	}
	mgr.SetFilter(f)

	logw, closeLog := openTuiLog(cfg)
	defer closeLog()

	if err := ui.Run(ctx, mgr, logw); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

// openTuiLog opens the log file the tui writes to in place of stderr.
// Records are discarded when the file can't be opened.
func openTuiLog(cfg *config.Config) (io.Writer, func()) {
	if err := cfg.EnsureDir(); err != nil {
		return io.Discard, func() {}
	}
	file, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return io.Discard, func() {}
	}
	return file, func() { file.Close() }
}
