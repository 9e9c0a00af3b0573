package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/countrydash/internal/config"
	"github.com/KaramelBytes/countrydash/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Source flags (override config if set)
	flagAPIURL         string
	flagHTTPTimeoutSec int
	flagInput          string

	// Loaded configuration and logger
	cfg    *cfgpkg.Global
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "countrydash",
	Short: "Country dashboard: browse, filter, chart and export REST Countries data",
	Long: `countrydash fetches the REST Countries dataset, normalizes it into a flat table
and lets you sort, filter, summarize, chart and export it from the terminal or
through a small HTTP dashboard API.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.countrydash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "REST Countries endpoint (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "read countries from a local .json/.csv/.xlsx file instead of the API")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{APIURL: cfgpkg.DefaultAPIURL, HTTPTimeoutSec: 30, LogLevel: "info", ChartWidthIn: 8, ChartHeightIn: 5, OutputDir: "."}
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("api-url") && flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	l, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to init logger: %v\n", err)
		return
	}
	logger = l
}
