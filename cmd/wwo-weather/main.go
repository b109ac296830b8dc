package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"wwo-weather/config"
	"wwo-weather/internal/api"
	"wwo-weather/internal/collector"
	"wwo-weather/internal/mqtt"
	"wwo-weather/internal/report"
	"wwo-weather/internal/storage"
	"wwo-weather/internal/weather"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wwo-weather [location] [days]",
		Short:         "World Weather Online console dashboard",
		Long:          "Fetch current conditions and a multi-day forecast from World Weather Online and print them.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				log.SetOutput(io.Discard)
			}
		},
		RunE: runDashboard,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(locationsCmd())

	return rootCmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	q := weather.ResolveQuery(args, cfg.Weather.APIKey)
	out := cmd.OutOrStdout()
	report.Status(out, q.Location)

	db, err := openLocations(cfg.Database.Path)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	coll, cleanup := newCollector(cfg, db)
	defer cleanup()

	result, err := coll.Collect(cmd.Context(), q)
	if err != nil {
		return err
	}

	report.Full(out, result.Record, result.Label)
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve weather reports over HTTP",
		Long:  "Start the HTTP API exposing JSON and text weather reports plus Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cfg.API.Enabled {
				return fmt.Errorf("api is disabled in config")
			}
			// serve always logs
			log.SetOutput(os.Stderr)

			db, err := openLocations(cfg.Database.Path)
			if err != nil {
				return err
			}
			var locations api.LocationLister
			if db != nil {
				defer db.Close()
				locations = db
			}

			coll, cleanup := newCollector(cfg, db)
			defer cleanup()

			server := api.NewServer(api.ServerConfig{
				Port:      cfg.API.Port,
				Collector: coll,
				Locations: locations,
				APIKey:    cfg.Weather.APIKey,
			})

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			errChan := make(chan error, 1)
			go func() {
				errChan <- server.Start()
			}()

			log.Println("WWO weather API started. Press Ctrl+C to stop.")

			select {
			case <-sigChan:
			case err := <-errChan:
				return fmt.Errorf("API server error: %w", err)
			}

			log.Println("Shutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Stop(ctx)
		},
	}
}

func locationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage saved location aliases",
	}

	withDB := func(fn func(cmd *cobra.Command, db *storage.Database, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			db, err := storage.NewDatabase(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()
			return fn(cmd, db, args)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <query>",
		Short: "Save or replace an alias for a location query",
		Args:  cobra.ExactArgs(2),
		RunE: withDB(func(cmd *cobra.Command, db *storage.Database, args []string) error {
			if err := db.SaveLocation(args[0], args[1]); err != nil {
				return fmt.Errorf("failed to save location: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s -> %s\n", args[0], args[1])
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved aliases",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, db *storage.Database, args []string) error {
			locs, err := db.ListLocations()
			if err != nil {
				return fmt.Errorf("failed to list locations: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tQUERY")
			for _, loc := range locs {
				fmt.Fprintf(tw, "%s\t%s\n", loc.Name, loc.Query)
			}
			return tw.Flush()
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a saved alias",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *storage.Database, args []string) error {
			if err := db.DeleteLocation(args[0]); err != nil {
				return fmt.Errorf("failed to remove %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		}),
	})

	return cmd
}

// newCollector wires the upstream client, the alias store (may be nil) and
// the MQTT publisher. cleanup disconnects the publisher.
func newCollector(cfg *config.Config, db *storage.Database) (*collector.Collector, func()) {
	client := weather.NewClient(weather.ClientConfig{
		BaseURL:   cfg.Weather.BaseURL,
		Timeout:   cfg.Weather.Timeout,
		UserAgent: cfg.Weather.UserAgent,
	})

	publisher, err := mqtt.NewPublisher(mqtt.PublisherConfig{
		Broker:      cfg.MQTT.Broker,
		ClientID:    cfg.MQTT.ClientID,
		Username:    cfg.MQTT.Username,
		Password:    cfg.MQTT.Password,
		TopicPrefix: cfg.MQTT.TopicPrefix,
		Enabled:     cfg.MQTT.Enabled,
	})
	if err != nil {
		log.Printf("Warning: MQTT connection failed: %v", err)
		publisher, _ = mqtt.NewPublisher(mqtt.PublisherConfig{Enabled: false})
	}

	collCfg := collector.CollectorConfig{
		Provider:  client,
		Publisher: publisher,
	}
	if db != nil {
		collCfg.Locations = db
	}

	return collector.NewCollector(collCfg), publisher.Close
}

// openLocations opens the alias database only if the file already exists.
func openLocations(path string) (*storage.Database, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	db, err := storage.NewDatabase(path)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func printError(w io.Writer, err error) {
	var (
		cfgErr    *weather.ConfigError
		statusErr *weather.HTTPStatusError
	)
	switch {
	case errors.As(err, &cfgErr):
		fmt.Fprintln(w, "❌  Please set your API key!")
		fmt.Fprintf(w, "    export %s='your_key_here'\n", config.APIKeyEnv)
		fmt.Fprintln(w, "    Get a free key: https://www.worldweatheronline.com/weather-api/")
	case errors.As(err, &statusErr):
		fmt.Fprintf(w, "❌  HTTP Error: %s\n", statusErr.Status)
	default:
		fmt.Fprintf(w, "❌  Error: %v\n", err)
	}
}

// exitCode is the only place process exit status is decided.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
