package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/medibuddy/tui/internal/app"
	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/config"
	"github.com/medibuddy/tui/internal/query"
	"github.com/medibuddy/tui/internal/session"
)

var Version = "0.0.0"

func newRootCmd() *cobra.Command {
	var (
		serverURL  string
		configPath string
		region     string
	)

	cmd := &cobra.Command{
		Use:   "medibuddy",
		Short: "Terminal client for the MediBuddy pharmaceutical info service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(serverURL, configPath, region)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "Backend base URL (overrides config file)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&region, "region", "", "Startup region code, e.g. FL or UK")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the medibuddy version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("medibuddy version: %s\n", Version)
		},
	}
	cmd.AddCommand(versionCmd)

	return cmd
}

func run(serverURL, configPath, region string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	setupLogging(cfg.Log)

	prefs := config.NewPrefsStore("")
	p := prefs.Load()
	if region != "" {
		if !client.ValidRegion(region) {
			return fmt.Errorf("unknown region %q", region)
		}
		p.Region = region
	}

	httpClient := client.NewHTTPClient(cfg.Server.URL)
	ws := client.NewWSClient(cfg.WSURL())

	// The program is created after the coordinators, so their send path
	// goes through a late-bound pointer.
	var prog *tea.Program
	send := func(msg tea.Msg) {
		if prog != nil {
			prog.Send(msg)
		}
	}

	store := session.NewStore(session.State{
		Region: p.Region,
		Theme:  p.Theme,
	}, func(region, theme string) {
		saved := *p
		saved.Region = region
		saved.Theme = theme
		if err := prefs.Save(&saved); err != nil {
			log.Warnf("save preferences: %v", err)
		}
	})
	store.OnRefresh(func() { send(app.RefreshSectionMsg{}) })

	m := app.New(app.Deps{
		HTTP:        httpClient,
		WS:          ws,
		Store:       store,
		DrugCoord:   query.New(query.SurfaceDrugs, cfg.Search.DrugWindow, send),
		PriceCoord:  query.New(query.SurfacePricing, cfg.Search.PricingWindow, send),
		SpecCoord:   query.New(query.SurfaceSpecialty, cfg.Search.SpecialtyWindow, send),
		ResultLimit: cfg.Search.ResultLimit,
	})

	prog = tea.NewProgram(m, tea.WithAltScreen())
	log.Infof("medibuddy %s connecting to %s", Version, cfg.Server.URL)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// setupLogging sends logs to the configured file. Stdout belongs to the
// TUI, so without a file the logs are discarded.
func setupLogging(lc config.LogConfig) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if lc.File == "" {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
