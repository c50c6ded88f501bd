package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/task"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "ltask help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, mgr *task.Manager, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  ltask                                              List all tasks
  ltask list [common flags] [--filter <filter>] [--format text|html|json]
  ltask add [common flags] <text...>
  ltask create [common flags] <text...>
  ltask toggle [common flags] [--filter <filter>] <ref>
  ltask done [common flags] [--filter <filter>] <ref>
  ltask rm [common flags] [--filter <filter>] <ref>
  ltask clear [common flags]
  ltask count [common flags]
  ltask tui [common flags] [--filter <filter>]
  ltask export [common flags] [--format pdf|google] [--out <file>] [--list <list-name>] [--filter <filter>]
  ltask login [common flags]
  ltask logout [common flags]
  ltask help
  ltask version

Filters: all (default), active, completed
Task refs: <n> is the position in the filtered list, @<id> is a task id

Common flags:
  --config <dir>      Override config directory
  --storage <driver>  Storage driver: file, memory, postgres, mysql
  --quiet             Suppress informational output
  --debug             Print debug logs to stderr
`
