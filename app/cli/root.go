package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	configx "github.com/tanpawarit/catalog-agent/pkg/config"
	logx "github.com/tanpawarit/catalog-agent/pkg/logger"
)

type globalOptions struct {
	EnvFile   string
	StorePath string
	Output    OutputFormat
}

func NewRootCmd() *cobra.Command {
	options := globalOptions{Output: OutputFormatJSON}
	cmd := &cobra.Command{
		Use:           "catalog-agent",
		Short:         "Product catalog with a keyword-routed tool agent.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configx.UseEnvFile(options.EnvFile)

			logCfg, err := configx.New[logx.Config]("LOG")
			if err != nil {
				return fmt.Errorf("load log config: %w", err)
			}
			logx.Init(*logCfg)

			cmd.SetContext(setGlobalOptions(cmd.Context(), &options))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&options.EnvFile, "env", "", "path to .env file")
	cmd.PersistentFlags().StringVar(&options.StorePath, "store", "", "catalog file path (overrides CATALOG_PATH)")
	cmd.PersistentFlags().VarP(&options.Output, "output", "o", "output format: json or yaml")

	cmd.AddGroup(
		&cobra.Group{ID: "catalog", Title: "Catalog Commands"},
		&cobra.Group{ID: "agent", Title: "Agent Commands"},
	)

	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewGetCmd())
	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewStatsCmd())

	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewToolsCmd())
	return cmd
}

// Execute runs the root command and exits with status 1 on any error, after
// printing it to stderr.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
