package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/tasklist"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// NewStoreFactory returns the production factory: it opens the configured
// store and restores the task list from it. Logs go to logOut.
func NewStoreFactory(logOut io.Writer) ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		log := cfg.Logger(logOut)

		st, err := store.Open(ctx, cfg.Store, cfg.Dir, cfg.DSN)
		if err != nil {
			return nil, err
		}
		log.Debug("opened store", "kind", cfg.Store, "dir", cfg.Dir)

		m := tasklist.New(st, tasklist.WithLogger(log))
		if err := m.Restore(ctx); err != nil {
			st.Close()
			return nil, err
		}
		return m, nil
	}
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var dataDir, storeKind, dsn string
	var quiet, debug bool

	fs.StringVar(&dataDir, "config", "", "")
	fs.StringVar(&storeKind, "store", "", "")
	fs.StringVar(&dsn, "dsn", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// A leftover leading "-" token means it was not a known flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(dataDir, storeKind, dsn)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	var svc service.Service
	if cmd.NeedsStore() {
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			if errors.Is(err, store.ErrUnknownKind) || errors.Is(err, store.ErrMissingDSN) {
				fmt.Fprintf(errOut, "error: %s\n", err)
				return exitcode.ConfigError
			}
			fmt.Fprintf(errOut, "error: store error: %s\n", err)
			return exitcode.StoreError
		}
		defer svc.Close()
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
}

// flagErrorMessage rewrites flag package errors into the CLI's wording.
func flagErrorMessage(err error) string {
	errStr := err.Error()

	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		return errStr
	case strings.HasPrefix(errStr, "flag provided but not defined:"):
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	default:
		return errStr
	}
}
