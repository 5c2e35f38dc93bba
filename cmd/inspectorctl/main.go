// Command inspectorctl is a command-line Controller Bridge client: it
// discovers candidate WPF processes, then issues one inspector request
// per invocation against a chosen target.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/faze79/WPFVisualTreeMcp/internal/config"
	"github.com/faze79/WPFVisualTreeMcp/pkg/bridge"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

func success(format string, args ...any) { successColor.Printf("✓ "); fmt.Printf(format+"\n", args...) }
func warn(format string, args ...any)    { warnColor.Printf("⚠ "); fmt.Printf(format+"\n", args...) }
func fail(format string, args ...any) {
	errorColor.Fprintf(os.Stderr, "✗ ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "inspectorctl",
		Short: "Discover, attach to, and query a WPF inspector endpoint",
		Long: `inspectorctl is a command-line client for the inspector endpoint
a WPF application hosts for an AI coding agent. Each subcommand attaches to
one target process (by --pid or --name) and issues a single request.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Int32("pid", 0, "target process ID")
	rootCmd.PersistentFlags().String("name", "", "target process name substring (used when --pid is omitted)")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Second, "request timeout")
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")

	rootCmd.AddCommand(
		discoverCmd(),
		treeCmd(),
		findCmd(),
		propertiesCmd(),
		bindingsCmd(),
		resourcesCmd(),
		stylesCmd(),
		layoutCmd(),
		highlightCmd(),
		exportCmd(),
		watchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fail("%s", err)
		os.Exit(1)
	}
}

// attachFromFlags builds a Bridge and attaches it to the process named by
// the command's --pid/--name persistent flags, the pattern every
// single-request subcommand shares.
func attachFromFlags(cmd *cobra.Command) (*bridge.Bridge, error) {
	pid, _ := cmd.Flags().GetInt32("pid")
	name, _ := cmd.Flags().GetString("name")
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = &config.Config{}
	}

	b := bridge.New(bridge.WithConfig(cfg))
	if err := b.Attach(cmd.Context(), pid, name); err != nil {
		return nil, err
	}
	return b, nil
}

// requestContext derives a context bounded by the command's --timeout
// persistent flag; watch does not use it, since a live watch session has
// no natural request deadline.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), timeout)
}
