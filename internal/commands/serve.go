package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/web"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command.
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the web UI" }
func (c *ServeCmd) Usage() string     { return "todo serve [--addr host:port]" }
func (c *ServeCmd) NeedsStore() bool  { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", web.DefaultAddr, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := web.New(svc, cfg.Logger(errOut))

	if !cfg.Quiet {
		fmt.Fprintf(out, "serving on http://%s\n", c.addr)
	}
	if err := srv.ListenAndServe(ctx, c.addr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	return exitcode.Success
}
