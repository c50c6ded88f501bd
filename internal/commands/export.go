package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ltask/internal/backend/googletasks"
	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/export"
	"ltask/internal/service"
	"ltask/internal/task"
)

// ServiceFactory creates the remote service used by export --format google.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format   string
	outPath  string
	listName string
	filter   string

	// NewService overrides the Google Tasks client (for testing).
	NewService ServiceFactory
	// Now overrides the report timestamp (for testing).
	Now func() time.Time
}

// SetFormat sets the export format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetOut sets the output file (for testing).
func (c *ExportCmd) SetOut(path string) {
	c.outPath = path
}

// SetListName sets the target Google Tasks list (for testing).
func (c *ExportCmd) SetListName(name string) {
	c.listName = name
}

// SetFilter sets the exported view (for testing).
func (c *ExportCmd) SetFilter(name string) {
	c.filter = name
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks to PDF or Google Tasks" }
func (c *ExportCmd) Usage() string {
	return "ltask export [--format pdf|google] [--out <file>] [--list <list-name>] [--filter <filter>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", export.FormatPDF, "")
	fs.StringVar(&c.outPath, "out", "", "")
	fs.StringVar(&c.outPath, "o", "", "")
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, mgr *task.Manager, args []string, out, errOut io.Writer) int {
	f, ok := parseFilterFlag(errOut, c.filter)
	if !ok {
		return exitcode.UserError
	}
	mgr.SetFilter(f)

	switch c.format {
	case "", export.FormatPDF:
		if c.listName != "" {
			fmt.Fprintln(errOut, "error: --list is only valid with --format google")
			return exitcode.UserError
		}
		return c.runPDF(mgr, f, cfg, out, errOut)
	case export.FormatGoogle:
		if c.outPath != "" {
			fmt.Fprintln(errOut, "error: --out is only valid with --format pdf")
			return exitcode.UserError
		}
		return c.runGoogle(ctx, cfg, mgr, out, errOut)
	default:
		fmt.Fprintf(errOut, "error: invalid format: %s\n", c.format)
		return exitcode.UserError
	}
}

func (c *ExportCmd) runPDF(mgr *task.Manager, f task.Filter, cfg *config.Config, out, errOut io.Writer) int {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	render := func(w io.Writer) error {
		return export.PDF(w, mgr.FilteredView(), f, mgr.CountSummary(), now())
	}

	if c.outPath == "" {
		if err := render(out); err != nil {
			fmt.Fprintf(errOut, "error: failed to write pdf: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.outPath), filepath.Base(c.outPath)+".*.tmp")
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := writeAndRename(tmp, c.outPath, render); err != nil {
		fmt.Fprintf(errOut, "error: failed to write pdf: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "wrote %s\n", c.outPath)
	}
	return exitcode.Success
}

// writeAndRename fills tmp with write and moves it over path. On any
// failure tmp is removed and path is left as it was.
func writeAndRename(tmp *os.File, path string, write func(io.Writer) error) error {
	name := tmp.Name()
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

func (c *ExportCmd) runGoogle(ctx context.Context, cfg *config.Config, mgr *task.Manager, out, errOut io.Writer) int {
	factory := c.NewService
	if factory == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: ltask login)")
			return exitcode.AuthError
		}
		factory = func(ctx context.Context, cfg *config.Config) (service.Service, error) {
			return googletasks.New(ctx, cfg)
		}
	}

	svc, err := factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	list, err := export.ResolveTarget(ctx, svc, c.listName)
	if err != nil && c.listName != "" {
		if strings.Contains(err.Error(), "not found") {
			fmt.Fprintf(errOut, "error: list not found: %s\n", c.listName)
			return exitcode.UserError
		}
		if strings.Contains(err.Error(), "ambiguous") {
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", c.listName)
			return exitcode.UserError
		}
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	res, err := export.ToService(ctx, svc, list.ID, mgr.FilteredView())
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		if !cfg.Quiet && res.Exported > 0 {
			fmt.Fprintf(out, "exported %d tasks\n", res.Exported)
		}
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d tasks\n", res.Exported)
	}
	return exitcode.Success
}
