package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

var (
	typeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	handleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func treeCmd() *cobra.Command {
	var (
		logical  bool
		root     string
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the visual or logical tree rooted at the target (or every top-level window)",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := attachFromFlags(cmd)
			if err != nil {
				return err
			}

			req := wire.TreeRequest{RootHandle: root}
			if maxDepth > 0 {
				req.MaxDepth = &maxDepth
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()

			var resp *wire.TreeResponse
			if logical {
				resp, err = b.GetLogicalTree(ctx, req)
			} else {
				resp, err = b.GetVisualTree(ctx, req)
			}
			if err != nil {
				return err
			}
			if !resp.Success {
				fail("%s", resp.Error)
				return nil
			}

			printNode(resp.Root, "")
			fmt.Printf("\n%d elements", resp.TotalElements)
			if resp.MaxDepthReached {
				fmt.Print(dimColor.Sprint("  (max depth reached, increase --max-depth to see more)"))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVar(&logical, "logical", false, "walk the logical tree instead of the visual tree")
	cmd.Flags().StringVar(&root, "root", "", "element handle to root the walk at (defaults to every top-level window)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum depth to walk (0 uses the endpoint default)")
	return cmd
}

func printNode(n *wire.VisualTreeNode, prefix string) {
	if n == nil {
		return
	}
	label := typeStyle.Render(n.TypeName)
	if n.Name != "" {
		label += " " + nameStyle.Render(n.Name)
	}
	fmt.Printf("%s%s %s\n", prefix, label, handleStyle.Render("#"+n.Handle))

	childPrefix := prefix + "  "
	for _, c := range n.Children {
		printNode(c, childPrefix)
	}
}
