package service

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jayline-services/assist/app/core"
	v1 "github.com/jayline-services/assist/app/logic/v1"
	"github.com/jayline-services/assist/app/logic/v1/process"
)

type Options struct {
	ConfigPath string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init api by given config")
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "site assistant service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
	process.NewProcess(app).Start()
	serve(app)

	return nil
}

// NewIndexCommand runs one full reindex and exits, for use from CI or cron
// outside the service process.
func NewIndexCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "rebuild the content search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunIndex(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func RunIndex(opts *Options) error {
	cfg := core.MustLoadBaseConfig(opts.ConfigPath)
	if cfg.Postgres.DSN == "" || cfg.AI.Token == "" {
		return fmt.Errorf("indexing requires postgres dsn and openai token to be configured")
	}

	app := core.MustSetupCore(cfg)

	report, err := v1.NewIndexLogic(context.Background(), app).Reindex()
	if err != nil {
		return err
	}

	fmt.Printf("indexing finished: %d/%d chunks indexed, %d failed\n",
		report.IndexedChunks, report.TotalChunks, report.FailedChunks)
	return nil
}
