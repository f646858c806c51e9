package main

import (
	"os"

	"go-tenure/internal/app"
	"go-tenure/internal/config"
	"go-tenure/internal/shared/apperror"
	"go-tenure/internal/shared/buildinfo"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg    config.Config
		logger *zap.Logger
	)

	root := &cobra.Command{
		Use:          "tenurectl",
		Short:        buildinfo.Description,
		SilenceUsage: true,
		Version:      buildinfo.Get().GitVersion,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			logger, err = app.NewLogger(cfg)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)
			apperror.Init()
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.AddCommand(newSeedCmd(&cfg), newMigrateCmd(&cfg), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		// version needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			info := buildinfo.Get()
			cmd.Println(info.String())
		},
	}
}
