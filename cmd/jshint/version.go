package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jshint/internal/engine"
	"jshint/internal/version"
)

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build metadata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		linters := make([]string, 0, 2)
		for _, v := range engine.Variants() {
			linters = append(linters, v.String())
		}
		info := version.Get(linters)
		switch strings.ToLower(versionFormat) {
		case "pretty":
			return version.WritePretty(cmd.OutOrStdout(), info)
		case "json":
			return version.WriteJSON(cmd.OutOrStdout(), info)
		}
		return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
	},
}
