package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"plate/command"
	"plate/config"
	"plate/db"
	"plate/misc"
	"plate/proc"
	"plate/service"
	"plate/telegram"

	"github.com/spf13/cobra"
)

var (
	flagConfig         string
	flagDatabaseDSN    string
	flagUpdateInterval string
	flagDebug          bool
)

var rootCmd = &cobra.Command{
	Use:   "plate [feeds file]",
	Short: "News feed ingestion",
	Long:  "plate polls the configured news feeds, normalizes their entries and stores new articles.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to an hcl config file")
	rootCmd.Flags().StringVarP(&flagDatabaseDSN, "database-dsn", "d", "", "sqlite path or postgres dsn")
	rootCmd.Flags().StringVarP(&flagUpdateInterval, "update-interval", "i", "", "interval between feed updates (e.g. 1h, 30m)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "debug logging")
}

func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var files []string
	if flagConfig != "" {
		files = append(files, flagConfig)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("database-dsn") {
		cfg.DatabaseDSN = flagDatabaseDSN
	}
	if cmd.Flags().Changed("update-interval") {
		if err := cfg.SetUpdateInterval(flagUpdateInterval); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = flagDebug
	}
	if len(args) == 1 {
		cfg.FeedsFile = args[0]
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	misc.SetupLog(cfg.Debug)
	if cfg.PushgatewayURL != "" {
		misc.InitMetrics(cfg.PushgatewayURL, cfg.PushgatewayJob)
	}

	misc.Info(fmt.Sprintf("database set to: %q", cfg.DatabaseDSN))
	dbConnect, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer db.Close(dbConnect)

	misc.Info(fmt.Sprintf("reading feeds from: %q", cfg.FeedsFile))
	sources, err := config.LoadSources(cfg.FeedsFile)
	if err != nil {
		return err
	}
	refs, err := service.RegisterSources(dbConnect, sources)
	if err != nil {
		return fmt.Errorf("register sources: %w", err)
	}
	misc.Info(fmt.Sprintf("monitoring sites: %v", service.SourceIDs(refs)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	updater := &service.Updater{
		DB:             dbConnect,
		Fetcher:        service.NewHTTPFetcher(cfg.FetchTimeout, cfg.UserAgent),
		Cleaner:        service.NewCleaner(),
		DedupPerSource: cfg.DedupPerSource,
	}
	processor := proc.New(dbConnect, updater, refs, cfg.UpdateInterval)
	handler := &command.Handler{DB: dbConnect, Stop: cancel}

	if cfg.TelegramToken != "" {
		bot, chatID, err := telegram.Connect(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return err
		}
		go telegram.Listen(ctx, bot, chatID, handler)
	}

	done := make(chan error, 1)
	misc.Info("starting update worker")
	go func() {
		done <- processor.Run(ctx)
	}()
	go command.ReadConsole(ctx, handler, os.Stdin, os.Stdout)

	if err := <-done; err != nil {
		return fmt.Errorf("update loop: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		misc.Fatal("run", "plate stopped", err)
	}
}
