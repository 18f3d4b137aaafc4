package cli

import (
	"context"

	"github.com/spf13/afero"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
)

type contextKey string

const (
	ContextKeyFileSystem    contextKey = "filesystem"
	ContextKeyToolGateway   contextKey = "tool_gateway"
	ContextKeyGlobalOptions contextKey = "global_options"
)

func getFileSystem(ctx context.Context) afero.Fs {
	if fs, ok := ctx.Value(ContextKeyFileSystem).(afero.Fs); ok && fs != nil {
		return fs
	}
	return afero.NewOsFs()
}

// getToolGateway returns a gateway injected by the caller, if any.
func getToolGateway(ctx context.Context) contractx.ToolGateway {
	if gw, ok := ctx.Value(ContextKeyToolGateway).(contractx.ToolGateway); ok {
		return gw
	}
	return nil
}

func setGlobalOptions(ctx context.Context, options *globalOptions) context.Context {
	return context.WithValue(ctx, ContextKeyGlobalOptions, options)
}

func getGlobalOptions(ctx context.Context) *globalOptions {
	if options, ok := ctx.Value(ContextKeyGlobalOptions).(*globalOptions); ok && options != nil {
		return options
	}
	return &globalOptions{Output: OutputFormatJSON}
}
