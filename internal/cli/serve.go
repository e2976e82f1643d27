package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mdvault/mdvaultd/internal/configloader"
	"github.com/mdvault/mdvaultd/internal/logging"
	"github.com/mdvault/mdvaultd/internal/server"
	"github.com/mdvault/mdvaultd/internal/ui/pretty"
)

func newServeCommand(info BuildInfo, configPath *string, color *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the vault API server",
		Long: `Start the REST API server over the configured markdown vault.

Configuration is read from the file given with --config (or mdvault.yaml
in the working directory), then overridden by MDVAULT_* environment
variables. The server runs until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), info, *configPath, *color)
		},
	}

	return cmd
}

func runServe(ctx context.Context, info BuildInfo, configPath, color string) error {
	result, err := configloader.Load(configloader.LoadOptions{ExplicitPath: configPath})
	if err != nil {
		return err
	}
	cfg := result.Config

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	logging.SetDefault(logger)

	styles := pretty.NewStyles(pretty.IsColorEnabled(color, os.Stdout))

	if result.GeneratedAPIKey {
		fmt.Fprint(os.Stdout, pretty.APIKeyNotice(styles, cfg.Security.APIKey))
	}

	srv, err := server.New(cfg, logger, info.Version)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, pretty.Banner(styles, pretty.BannerInfo{
		Version:   info.Version,
		Addr:      srv.Addr(),
		HTTPS:     cfg.Server.HTTPS,
		VaultPath: cfg.Vault.Path,
		ConfigVia: result.LoadedFrom,
	}))
	fmt.Fprint(os.Stdout, pretty.Rule(styles, os.Stdout))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
