package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nebulanotes/constellation/internal/profile"
	"github.com/nebulanotes/constellation/internal/version"
	"github.com/nebulanotes/constellation/server"
	"github.com/nebulanotes/constellation/store"
	"github.com/nebulanotes/constellation/store/db"
)

const greetingBanner = `Constellation %s
Thought analysis engine: lexical similarity, clustering, layout, insights.
`

var rootCmd = &cobra.Command{
	Use:   "constellation",
	Short: "A thought constellation analysis service",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile := &profile.Profile{
			Mode:           viper.GetString("mode"),
			Addr:           viper.GetString("addr"),
			Port:           viper.GetInt("port"),
			Data:           viper.GetString("data"),
			Driver:         viper.GetString("driver"),
			DSN:            viper.GetString("dsn"),
			TickInterval:   viper.GetDuration("tick-interval"),
			MergeThreshold: viper.GetFloat64("merge-threshold"),
			Version:        version.GetCurrentVersion(viper.GetString("mode")),
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			slog.Error("invalid configuration", "error", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			slog.Error("failed to create db driver", "error", err)
			os.Exit(1)
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}

		s, err := server.NewServer(ctx, instanceProfile, storeInstance)
		if err != nil {
			slog.Error("failed to create server", "error", err)
			os.Exit(1)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			slog.Info("received signal, shutting down", "signal", sig.String())
			s.Shutdown(ctx)
			cancel()
		}()

		fmt.Printf(greetingBanner, instanceProfile.Version)
		if err := s.Start(ctx); err != nil {
			if err.Error() != "http: Server closed" {
				slog.Error("failed to start server", "error", err)
				cancel()
			}
		}

		<-ctx.Done()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of the server, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8231, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")
	rootCmd.PersistentFlags().Duration("tick-interval", 50*time.Millisecond, "animation tick interval")
	rootCmd.PersistentFlags().Float64("merge-threshold", 0.30, "default merge aggressiveness threshold")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn", "tick-interval", "merge-threshold"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
	viper.SetDefault("mode", "demo")
	viper.SetDefault("driver", "sqlite")
	viper.SetEnvPrefix("constellation")
	viper.AutomaticEnv()
}
