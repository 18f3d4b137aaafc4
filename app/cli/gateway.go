package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
	toolx "github.com/tanpawarit/catalog-agent/agent/tool"
	"github.com/tanpawarit/catalog-agent/agent/toolserver"
	configx "github.com/tanpawarit/catalog-agent/pkg/config"
	metricsx "github.com/tanpawarit/catalog-agent/pkg/metrics"
)

const (
	TransportLocal = "local"
	TransportStdio = "stdio"
)

var ErrUnknownTransport = errors.New("unknown tool transport")

type ToolsConfig struct {
	Transport string `default:"local"`
	// Command is the tool server binary; empty means the running executable.
	Command string
}

// openGateway builds the tool gateway selected by TOOLS_TRANSPORT.
func openGateway(cmd *cobra.Command, metrics *metricsx.Provider) (contractx.ToolGateway, func() error, error) {
	ctx := cmd.Context()
	if gw := getToolGateway(ctx); gw != nil {
		return gw, func() error { return nil }, nil
	}

	cfg, err := configx.New[ToolsConfig]("TOOLS")
	if err != nil {
		return nil, nil, fmt.Errorf("load tools config: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case "", TransportLocal:
		store, release, err := openStore(cmd)
		if err != nil {
			return nil, nil, err
		}
		executor, err := toolx.NewExecutor(store, toolx.WithMetrics(metrics))
		if err != nil {
			_ = release()
			return nil, nil, err
		}
		return executor, release, nil

	case TransportStdio:
		command := cfg.Command
		if command == "" {
			if command, err = os.Executable(); err != nil {
				return nil, nil, fmt.Errorf("resolve tool server binary: %w", err)
			}
		}
		client, err := toolserver.Start(ctx, command, serverArgs(getGlobalOptions(ctx))...)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}
}

// serverArgs forwards the flags that select the catalog to the child process.
func serverArgs(options *globalOptions) []string {
	args := []string{"tools", "serve"}
	if options.EnvFile != "" {
		args = append(args, "--env", options.EnvFile)
	}
	if options.StorePath != "" {
		args = append(args, "--store", options.StorePath)
	}
	return args
}
