package main

import (
	"github.com/spf13/cobra"

	"github.com/mkdugri-blog/Linux-boot/internal/config"
	"github.com/mkdugri-blog/Linux-boot/internal/nav"
)

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("addr", "", "HTTP listen address (overrides config)")
	cmd.Flags().String("base-path", "", "path prefix the site is served under")
	cmd.Flags().Bool("dev", false, "reparse templates from disk on every request")
	cmd.Flags().String("templates", "", "templates directory used in dev mode")
	cmd.Flags().String("public", "", "public assets directory")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		c.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("base-path") {
		v, _ := flags.GetString("base-path")
		c.BasePath = nav.NormalizeBase(v)
	}
	if flags.Changed("site-url") {
		c.SiteURL, _ = flags.GetString("site-url")
	}
	if flags.Changed("dev") {
		c.Dev, _ = flags.GetBool("dev")
	}
	if flags.Changed("templates") {
		c.TemplatesDir, _ = flags.GetString("templates")
	}
	if flags.Changed("public") {
		c.PublicDir, _ = flags.GetString("public")
	}
	if flags.Changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("out") {
		c.Export.OutDir, _ = flags.GetString("out")
	}
}
