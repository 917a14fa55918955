package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkdugri-blog/Linux-boot/internal/config"
	"github.com/mkdugri-blog/Linux-boot/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "linux-boot",
	Short: "The Linux boot journey, from power button to penguin",
	Long: `linux-boot serves an interactive guide to the Linux boot process:
a clickable flowchart of the seven boot stages, a detailed article and a
live view state per page. The same guide can be exported as a static site
for GitHub Pages or explored in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "linux-boot.yml", "config file path")
	addServeFlags(rootCmd)
}

// setup applies flag overrides, validates the result and builds the logger.
func setup(cmd *cobra.Command) error {
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	l, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = l
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
