package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faze79/WPFVisualTreeMcp/internal/config"
	"github.com/faze79/WPFVisualTreeMcp/pkg/bridge"
)

func discoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "List running processes, marking which host a reachable inspector endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			configPath, _ := cmd.Flags().GetString("config")

			cfg := &config.Config{}
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()

			b := bridge.New(bridge.WithConfig(cfg))
			candidates, err := b.DiscoverCandidates(ctx, name)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				warn("no matching processes found")
				return nil
			}

			for _, c := range candidates {
				marker := dimColor.Sprint("—")
				if c.InspectorAvailable {
					marker = successColor.Sprint("●")
				}
				fmt.Printf("%s  %6d  %-28s %s\n", marker, c.ProcessID, c.Name, dimColor.Sprint(c.CommandLine))
			}
			return nil
		},
	}
}
