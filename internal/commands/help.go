package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{registry: DefaultRegistry})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	registry *Registry
}

// NewHelpCmd creates a help command listing the commands of r.
func NewHelpCmd(r *Registry) *HelpCmd {
	return &HelpCmd{registry: r}
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help [command]" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		cmd, ok := c.registry.Find(args[0])
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
			return exitcode.UserError
		}
		fmt.Fprintf(out, "Usage:\n  %s\n\n%s\n", cmd.Usage(), cmd.Synopsis())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(out, "Aliases: %s\n", strings.Join(aliases, ", "))
		}
		return exitcode.Success
	}

	fmt.Fprint(out, "Usage:\n  todo [command] [common flags] [args]\n\nCommands:\n")
	for _, cmd := range c.registry.All() {
		fmt.Fprintf(out, "  %-8s  %s\n", cmd.Name(), cmd.Synopsis())
	}
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
With no command, todo lists tasks.
A <ref> is a task's position in the list (1, 2, ...) or its id.

Common flags:
  --config <dir>   Override data directory
  --store <kind>   Store kind: file, sqlite, mysql, memory (env: TODO_STORE)
  --dsn <dsn>      MySQL data source name (env: TODO_DSN)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
