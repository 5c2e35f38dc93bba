package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

func exportCmd() *cobra.Command {
	var (
		root   string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the visual tree as JSON or XAML-like markup",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := attachFromFlags(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			resp, err := b.ExportTree(ctx, wire.ExportTreeRequest{
				ElementHandle: root,
				Format:        wire.ExportFormat(format),
			})
			if err != nil {
				return err
			}
			if !resp.Success {
				fail("%s", resp.Error)
				return nil
			}

			var body []byte
			switch resp.Format {
			case wire.FormatXAML:
				body = []byte(resp.Xaml)
			default:
				body, err = json.MarshalIndent(resp.Tree, "", "  ")
				if err != nil {
					return err
				}
			}

			if output == "" {
				fmt.Println(string(body))
				return nil
			}
			if err := os.WriteFile(output, body, 0o644); err != nil {
				return err
			}
			success("wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "element handle to root the export at")
	cmd.Flags().StringVar(&format, "format", string(wire.FormatJSON), "json or xaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
