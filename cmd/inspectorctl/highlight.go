package main

import (
	"github.com/spf13/cobra"

	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

func highlightCmd() *cobra.Command {
	var durationMs int
	cmd := &cobra.Command{
		Use:   "highlight",
		Short: "Briefly flash an adorner around an element so it's visible on screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, _ := cmd.Flags().GetString("handle")
			b, err := attachFromFlags(cmd)
			if err != nil {
				return err
			}
			req := wire.HighlightElementRequest{ElementHandle: handle}
			if durationMs > 0 {
				req.DurationMs = &durationMs
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			resp, err := b.HighlightElement(ctx, req)
			if err != nil {
				return err
			}
			if !resp.Success {
				fail("%s", resp.Error)
				return nil
			}
			success("highlighted")
			return nil
		},
	}
	elementHandleFlag(cmd)
	cmd.Flags().IntVar(&durationMs, "duration-ms", 0, "highlight duration in milliseconds (0 uses the endpoint default)")
	return cmd
}
