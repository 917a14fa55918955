package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkdugri-blog/Linux-boot/internal/content"
	"github.com/mkdugri-blog/Linux-boot/internal/tour"
	"github.com/mkdugri-blog/Linux-boot/web"
)

var tourCmd = &cobra.Command{
	Use:   "tour",
	Short: "Explore the guide in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		article, err := content.Load(web.FS, contentDir)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		return tour.Run(article)
	},
}

func init() {
	rootCmd.AddCommand(tourCmd)
}
