package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/treeline/internal/config"
	"github.com/groblegark/treeline/internal/events"
	"github.com/groblegark/treeline/internal/hierarchy"
	"github.com/groblegark/treeline/internal/jira"
	"github.com/groblegark/treeline/internal/store"
	"github.com/groblegark/treeline/internal/store/postgres"
	"github.com/groblegark/treeline/internal/ui"
)

var (
	jsonOutput bool
	noColor    bool
	offline    bool
	baseURL    string

	cfg        *config.Config
	st         store.Store
	tracker    *jira.HTTPClient
	repo       hierarchy.Repository
	topo       hierarchy.TopologyProvider
	pub        events.Publisher
	builder    *hierarchy.Builder
)

var rootCmd = &cobra.Command{
	Use:   "tl",
	Short: "Build and display issue hierarchies from a tracker",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
}

// setup wires the full stack from environment config plus the active remote
// profile: tracker client (or offline cache reader), optional postgres cache,
// and event publisher.
func setup() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	applyActiveRemote(cfg)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if noColor || !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}

	if cfg.CacheURL != "" {
		st, err = postgres.New(cfg.CacheURL)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
	}

	if offline {
		if st == nil {
			return fmt.Errorf("--offline requires TREELINE_CACHE_URL")
		}
		repo = store.NewOfflineRepository(st)
	} else {
		if cfg.BaseURL == "" {
			return fmt.Errorf("TREELINE_BASE_URL is required (or pass --offline)")
		}
		tracker = jira.NewHTTPClient(cfg.BaseURL, cfg.Email, cfg.Token, cfg.AuthMode)
		topo = tracker
		if st != nil {
			repo = store.NewCachingRepository(tracker, st)
		} else {
			repo = tracker
		}
	}

	if cfg.NATSURL != "" {
		pub, err = events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return fmt.Errorf("connect event bus: %w", err)
		}
	} else {
		pub = &events.NoopPublisher{}
	}

	builder = hierarchy.NewBuilder(repo, hierarchy.Options{
		Topology:   topo,
		TopologyID: cfg.TopologyID,
		ChildCap:   cfg.ChildCap,
	})
	return nil
}

func teardown() {
	if pub != nil {
		pub.Close()
	}
	if tracker != nil {
		tracker.Close()
	}
	if st != nil {
		st.Close()
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "serve from the local cache only")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "tracker base URL (overrides TREELINE_BASE_URL)")

	rootCmd.AddCommand(forestCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
