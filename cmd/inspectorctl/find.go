package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

func findCmd() *cobra.Command {
	var (
		root       string
		typeName   string
		elemName   string
		properties []string
		maxResults int
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Search the visual tree for elements matching type, name, and/or property values",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := attachFromFlags(cmd)
			if err != nil {
				return err
			}

			req := wire.FindElementsRequest{
				RootHandle:  root,
				TypeName:    typeName,
				ElementName: elemName,
			}
			filter, err := parsePropertyFilter(properties)
			if err != nil {
				return err
			}
			req.PropertyFilter = filter
			if maxResults > 0 {
				req.MaxResults = &maxResults
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()
			resp, err := b.FindElements(ctx, req)
			if err != nil {
				return err
			}
			if !resp.Success {
				fail("%s", resp.Error)
				return nil
			}
			if len(resp.Matches) == 0 {
				warn("no elements matched")
				return nil
			}

			for _, m := range resp.Matches {
				label := typeStyle.Render(m.TypeName)
				if m.Name != "" {
					label += " " + nameStyle.Render(m.Name)
				}
				fmt.Printf("%s %s\n  %s\n", label, handleStyle.Render("#"+m.Handle), dimColor.Sprint(m.Path))
			}
			fmt.Printf("\n%d match(es)\n", len(resp.Matches))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "element handle to root the search at")
	cmd.Flags().StringVar(&typeName, "type", "", "filter by type name (case-insensitive substring, or short name)")
	cmd.Flags().StringVar(&elemName, "element-name", "", "filter by element name (case-insensitive substring)")
	cmd.Flags().StringArrayVar(&properties, "property", nil, "filter by property=value, repeatable")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum matches to return (0 uses the endpoint default)")
	return cmd
}

// parsePropertyFilter turns repeated --property name=value flags into the
// map FindElementsRequest.PropertyFilter expects, or nil if none were given.
func parsePropertyFilter(properties []string) (map[string]string, error) {
	if len(properties) == 0 {
		return nil, nil
	}
	filter := make(map[string]string, len(properties))
	for _, p := range properties {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --property %q, want name=value", p)
		}
		filter[k] = v
	}
	return filter, nil
}
