package cli

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanpawarit/catalog-agent/agent/agents/orchestrator"
	toolx "github.com/tanpawarit/catalog-agent/agent/tool"
	"github.com/tanpawarit/catalog-agent/agent/toolserver"
	"github.com/tanpawarit/catalog-agent/app/httpapi"
	configx "github.com/tanpawarit/catalog-agent/pkg/config"
	metricsx "github.com/tanpawarit/catalog-agent/pkg/metrics"
)

func NewAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ask <query...>",
		Short:   "Answer a natural-language catalog request",
		GroupID: "agent",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			agentCfg, err := configx.New[orchestrator.Config]("AGENT")
			if err != nil {
				return err
			}
			tools, release, err := openGateway(cmd, nil)
			if err != nil {
				return err
			}
			defer release()

			agent, err := orchestrator.New(tools, *agentCfg)
			if err != nil {
				return err
			}
			answer, err := agent.Ask(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return renderAnswer(cmd.OutOrStdout(), answer, getGlobalOptions(ctx).Output)
		},
	}
}

func NewServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the agent over HTTP",
		GroupID: "agent",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			httpCfg, err := configx.New[httpapi.Config]("HTTP")
			if err != nil {
				return err
			}
			if addr != "" {
				httpCfg.Addr = addr
			}
			agentCfg, err := configx.New[orchestrator.Config]("AGENT")
			if err != nil {
				return err
			}

			metrics := metricsx.NewDefault()
			tools, release, err := openGateway(cmd, metrics)
			if err != nil {
				return err
			}
			defer release()

			agent, err := orchestrator.New(tools, *agentCfg, orchestrator.WithMetrics(metrics))
			if err != nil {
				return err
			}
			server, err := httpapi.NewServer(agent, *httpCfg, metrics)
			if err != nil {
				return err
			}

			log.Info().Str("addr", httpCfg.Addr).Msg("http server starting")
			return server.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

func NewToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tools",
		Short:   "Inspect or serve the catalog tools",
		GroupID: "agent",
	}
	cmd.AddCommand(newToolsServeCmd())
	cmd.AddCommand(newToolsListCmd())
	return cmd
}

func newToolsServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog tools over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			executor, err := toolx.NewExecutor(store)
			if err != nil {
				return err
			}
			server, err := toolserver.NewServer(executor, toolx.Infos())
			if err != nil {
				return err
			}
			return server.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tools, release, err := openGateway(cmd, nil)
			if err != nil {
				return err
			}
			defer release()

			var descriptors []toolserver.ToolDescriptor
			if client, ok := tools.(*toolserver.Client); ok {
				if descriptors, err = client.List(ctx); err != nil {
					return err
				}
			} else {
				for _, info := range toolx.Infos() {
					descriptors = append(descriptors, toolserver.ToolDescriptor{Name: info.Name, Description: info.Desc})
				}
			}
			return render(cmd.OutOrStdout(), descriptors, getGlobalOptions(ctx).Output)
		},
	}
}
