package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

func elementHandleFlag(cmd *cobra.Command) {
	cmd.Flags().String("handle", "", "element handle (from tree or find)")
	_ = cmd.MarkFlagRequired("handle")
}

func propertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Print every property read off an element",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, _ := cmd.Flags().GetString("handle")
			b, err := attachFromFlags(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			resp, err := b.GetElementProperties(ctx, wire.GetElementPropertiesRequest{ElementHandle: handle})
			if err != nil {
				return err
			}
			if !resp.Success {
				fail("%s", resp.Error)
				return nil
			}
			for _, p := range resp.Properties {
				fmt.Printf("%-24s %-12s %s  %s\n", p.Name, dimColor.Sprint(p.TypeName), p.Value, dimColor.Sprint("("+string(p.Source)+")"))
				if p.IsBinding && p.BindingDetails != nil {
					bd := p.BindingDetails
					status := string(bd.Status)
					if bd.HasError {
						status = errorColor.Sprint(status)
					}
					fmt.Printf("  binding: %s -> %s [%s] %s\n", bd.Path, bd.Source, bd.Mode, status)
					if bd.ErrorMessage != "" {
						fmt.Printf("    %s\n", dimColor.Sprint(bd.ErrorMessage))
					}
				}
			}
			return nil
		},
	}
	elementHandleFlag(cmd)
	return cmd
}

func bindingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bindings",
		Short: "Print every data binding attached to an element",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, _ := cmd.Flags().GetString("handle")
			b, err := attachFromFlags(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			resp, err := b.GetBindings(ctx, wire.GetBindingsRequest{ElementHandle: handle})
			if err != nil {
				return err
			}
			if !resp.Success {
				fail("%s", resp.Error)
				return nil
			}
			if len(resp.Bindings) == 0 {
				warn("no bindings on this element")
				return nil
			}
			for _, bnd := range resp.Bindings {
				status := string(bnd.Status)
				if bnd.HasError {
					status = errorColor.Sprint(status)
				}
				fmt.Printf("%s: %s -> %s [%s] %s = %s\n", bnd.Property, bnd.Path, bnd.Source, bnd.Mode, status, bnd.CurrentValue)
				if bnd.ErrorMessage != "" {
					fmt.Printf("  %s\n", dimColor.Sprint(bnd.ErrorMessage))
				}
			}
			return nil
		},
	}
	elementHandleFlag(cmd)
	return cmd
}

func resourcesCmd() *cobra.Command {
	var scope string
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Print resource-dictionary entries visible at a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, _ := cmd.Flags().GetString("handle")
			b, err := attachFromFlags(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			resp, err := b.GetResources(ctx, wire.GetResourcesRequest{
				Scope:         wire.ResourceScope(scope),
				ElementHandle: handle,
			})
			if err != nil {
				return err
			}
			if !resp.Success {
				fail("%s", resp.Error)
				return nil
			}
			for _, r := range resp.Resources {
				fmt.Printf("%-24s %-20s %s  %s\n", r.Key, dimColor.Sprint(r.TypeName), r.Value, dimColor.Sprint(r.Source))
			}
			return nil
		},
	}
	cmd.Flags().String("handle", "", "element handle (required unless --scope=Application)")
	cmd.Flags().StringVar(&scope, "scope", string(wire.ScopeApplication), "Application, Window, or Element")
	return cmd
}

func stylesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Print the style applied to an element",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, _ := cmd.Flags().GetString("handle")
			b, err := attachFromFlags(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			resp, err := b.GetStyles(ctx, wire.GetStylesRequest{ElementHandle: handle})
			if err != nil {
				return err
			}
			if !resp.Success {
				fail("%s", resp.Error)
				return nil
			}
			if resp.Style == nil {
				warn("no style on this element")
				return nil
			}
			s := resp.Style
			fmt.Printf("%s (targets %s)\n", dimColor.Sprint(s.Key), s.TargetType)
			if s.BasedOn != "" {
				fmt.Printf("  based on %s\n", s.BasedOn)
			}
			for _, set := range s.Setters {
				fmt.Printf("  %s = %s\n", set.Property, set.Value)
			}
			return nil
		},
	}
	elementHandleFlag(cmd)
	return cmd
}

func layoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print layout metrics for a renderable element",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, _ := cmd.Flags().GetString("handle")
			b, err := attachFromFlags(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			resp, err := b.GetLayoutInfo(ctx, wire.GetLayoutInfoRequest{ElementHandle: handle})
			if err != nil {
				return err
			}
			if !resp.Success {
				fail("%s", resp.Error)
				return nil
			}
			fmt.Printf("actual     %6.1f x %6.1f\n", resp.ActualWidth, resp.ActualHeight)
			fmt.Printf("desired    %6.1f x %6.1f\n", resp.DesiredSize.W, resp.DesiredSize.H)
			fmt.Printf("render     %6.1f x %6.1f\n", resp.RenderSize.W, resp.RenderSize.H)
			fmt.Printf("margin     %s\n", thicknessString(resp.Margin))
			if resp.Padding != nil {
				fmt.Printf("padding    %s\n", thicknessString(*resp.Padding))
			}
			fmt.Printf("alignment  %s / %s\n", resp.HorizontalAlignment, resp.VerticalAlignment)
			fmt.Printf("visibility %s\n", resp.Visibility)
			return nil
		},
	}
	elementHandleFlag(cmd)
	return cmd
}

func thicknessString(t wire.Thickness) string {
	return fmt.Sprintf("%.1f,%.1f,%.1f,%.1f", t.L, t.T, t.R, t.B)
}
