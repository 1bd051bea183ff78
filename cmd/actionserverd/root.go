// Command actionserverd is a demo host: it constructs one action server
// bound to the in-process local transport and drives its status-publish
// and expiration-sweep timers, the way actionlib's Start() drove a select
// loop over its own timers and shutdown channel. It exists to give the
// action server core something runnable to exercise outside of tests.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/team-rocos/rclactiongo/action"
)

type serveOptions struct {
	actionName    string
	resultTimeout time.Duration
	statusPeriod  time.Duration
	sweepPeriod   time.Duration
	optionsFile   string
}

// NewRootCmd builds the actionserverd root command.
func NewRootCmd() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:           "actionserverd",
		Short:         "Run a single action server against the in-process transport.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, &opts)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVar(&opts.actionName, "action-name", "/fibonacci", "Base name the action's services and topics are derived from.")
	f.DurationVar(&opts.resultTimeout, "result-timeout", 15*time.Minute, "Result retention window after a goal terminates.")
	f.DurationVar(&opts.statusPeriod, "status-period", time.Second, "Status snapshot publish period.")
	f.DurationVar(&opts.sweepPeriod, "sweep-period", 5*time.Second, "Expiration sweep period.")

	opt := pflag.NewFlagSet("options", pflag.ContinueOnError)
	opt.StringVar(&opts.optionsFile, "options-file", "", "Optional JSON file overriding QoS depths and the result timeout.")
	cmd.Flags().AddFlagSet(opt)

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	serverOpts := action.DefaultServerOptions()
	serverOpts.ResultTimeout = opts.resultTimeout

	if opts.optionsFile != "" {
		overridden, err := loadOptionsFile(opts.optionsFile, serverOpts)
		if err != nil {
			return fmt.Errorf("loading options file: %w", err)
		}
		serverOpts = overridden
	}

	host, err := newServerHost(opts.actionName, serverOpts)
	if err != nil {
		return err
	}
	defer host.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "action server %q ready\n", opts.actionName)
	host.Run(cmd.Context(), opts.statusPeriod, opts.sweepPeriod)
	return nil
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
