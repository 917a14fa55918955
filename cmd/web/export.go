package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkdugri-blog/Linux-boot/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the guide as a static site",
	Long: `Export renders the home page, one page per boot stage, a 404 page,
steps.json and all assets into the output directory. URLs are prefixed with
--base-path so the result can be published under a sub-path, e.g.
https://<user>.github.io/<repo>/.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			return err
		}
		s, err := newSite(cfg)
		if err != nil {
			return err
		}
		pub, err := publicFS(cfg)
		if err != nil {
			return fmt.Errorf("public assets: %w", err)
		}
		res, err := export.Export(cmd.Context(), s, export.Options{
			OutDir:   cfg.Export.OutDir,
			Public:   pub,
			Reporter: export.NewReporter(os.Stderr),
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files (%d bytes) to %s (base path %s)\n", len(res.Files), res.Bytes, cfg.Export.OutDir, cfg.BasePath)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "", "output directory (default from config, \"dist\")")
	exportCmd.Flags().String("base-path", "", "path prefix the site will be hosted under")
	exportCmd.Flags().String("site-url", "", "absolute origin used for canonical links")
	exportCmd.Flags().String("public", "", "public assets directory")
	exportCmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.AddCommand(exportCmd)
}
