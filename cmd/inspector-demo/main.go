// Command inspector-demo hosts a synthetic WPF-shaped UI tree behind a
// live inspector endpoint, standing in for a real WPF process during
// development of a controller or bridge client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/faze79/WPFVisualTreeMcp/internal/config"
	"github.com/faze79/WPFVisualTreeMcp/internal/dashboard"
	"github.com/faze79/WPFVisualTreeMcp/internal/demotoolkit"
	"github.com/faze79/WPFVisualTreeMcp/internal/ipc"
	"github.com/faze79/WPFVisualTreeMcp/internal/telemetry"
	"github.com/faze79/WPFVisualTreeMcp/pkg/inspector"
)

const banner = `
  ╦ ╦╔═╗╔═╗  ╦╔╗╔╔═╗╔═╗╔═╗╔═╗╔╦╗╔═╗╦═╗
  ║║║╠═╝╠╣───║║║║╚═╗╠═╝║╣ ║   ║ ║ ║╠╦╝
  ╚╩╝╩  ╚    ╩╝╚╝╚═╝╩  ╚═╝╚═╝ ╩ ╚═╝╩╚═
`

func main() {
	var (
		configPath    string
		metricsAddr   string
		dashboardAddr string
	)
	flag.StringVar(&configPath, "config", "", "path to a YAML config file (defaults compiled in if omitted)")
	flag.StringVar(&metricsAddr, "metrics-addr", "127.0.0.1:9091", "address to serve /metrics on")
	flag.StringVar(&dashboardAddr, "dashboard-addr", "127.0.0.1:9092", "address to serve the live activity dashboard on (empty disables it)")
	flag.Parse()

	logger := slog.Default()
	fmt.Print(banner)

	var cfg *config.Config
	if configPath == "" {
		cfg = &config.Config{}
	} else {
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.Error("load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	metrics := telemetry.New(telemetry.Config{})

	var hub *dashboard.Hub
	opts := []inspector.Option{
		inspector.WithLogger(logger),
		inspector.WithMetrics(metrics),
		inspector.WithMarshalTimeout(cfg.ResolvedMarshalTimeout()),
		inspector.WithBindingErrorBufferSize(cfg.ResolvedBindingErrorBufferSize()),
		inspector.WithNotificationQueueDepth(cfg.ResolvedNotificationQueueDepth()),
	}
	if dashboardAddr != "" {
		hub = dashboard.NewHub(logger)
		opts = append(opts, inspector.WithDashboard(hub))
	}

	tk := buildSampleTree()
	endpoint, err := inspector.New(tk, opts...)
	if err != nil {
		logger.Error("construct inspector endpoint", "error", err)
		os.Exit(1)
	}

	rendezvous := ipc.Name(cfg.ResolvedRendezvousPrefix(), os.Getpid())
	fmt.Printf("  pid %d, rendezvous %q, metrics at http://%s/metrics\n", os.Getpid(), rendezvous, metricsAddr)
	if hub != nil {
		fmt.Printf("  dashboard at http://%s/\n", dashboardAddr)
	}
	fmt.Println()

	metricsSrv := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler()}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server exited", "error", err)
		}
	}()

	var dashboardSrv *http.Server
	if hub != nil {
		dashboardSrv = &http.Server{Addr: dashboardAddr, Handler: hub.Router()}
		go func() {
			if err := dashboardSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("dashboard server exited", "error", err)
			}
		}()
	}

	stopCh := make(chan struct{})
	serveErr := make(chan error, 1)
	go func() { serveErr <- endpoint.Serve(rendezvous, stopCh) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var shutdownErr *multierror.Error
	select {
	case <-sigCh:
		fmt.Println("\n  shutting down...")
		close(stopCh)
		if err := <-serveErr; err != nil {
			shutdownErr = multierror.Append(shutdownErr, fmt.Errorf("serve: %w", err))
		}
	case err := <-serveErr:
		// The endpoint stopped on its own (listener error); stopCh was
		// never closed by us, so there is nothing further to signal it.
		if err != nil {
			shutdownErr = multierror.Append(shutdownErr, fmt.Errorf("serve: %w", err))
		}
	}
	endpoint.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(ctx); err != nil {
		shutdownErr = multierror.Append(shutdownErr, fmt.Errorf("metrics server shutdown: %w", err))
	}
	if dashboardSrv != nil {
		if err := dashboardSrv.Shutdown(ctx); err != nil {
			shutdownErr = multierror.Append(shutdownErr, fmt.Errorf("dashboard server shutdown: %w", err))
		}
	}

	if shutdownErr.ErrorOrNil() != nil {
		logger.Error("shutdown completed with errors", "error", shutdownErr)
		os.Exit(1)
	}
}

// buildSampleTree constructs a representative window with bound,
// resourced, and styled controls so every GetX request kind has
// something real to return against this demo host.
func buildSampleTree() *demotoolkit.Toolkit {
	window := demotoolkit.Window("MainWindow")
	window.SetLayout(demotoolkit.Layout{
		ActualWidth: 800, ActualHeight: 450,
		DesiredW: 800, DesiredH: 450,
		RenderW: 800, RenderH: 450,
		HorizontalAlignment: "Stretch", VerticalAlignment: "Stretch",
		Visibility: "Visible",
	})
	window.AddResource("AccentBrush", demotoolkit.Resource{TypeName: "SolidColorBrush", Source: "Application", Value: "#FF3B82F6"})

	panel := demotoolkit.New("StackPanel", "RootPanel")
	panel.SetLayout(demotoolkit.Layout{ActualWidth: 780, ActualHeight: 430, Visibility: "Visible"})
	window.AddVisualChild(panel)

	label := demotoolkit.New("TextBlock", "GreetingLabel")
	label.SetProperty("Text", "Hello, Alice", "Local")
	label.SetBinding("Text", demotoolkit.Binding{
		Path: "User.DisplayName", Mode: "OneWay", Status: "Active",
	})
	label.SetLayout(demotoolkit.Layout{ActualWidth: 200, ActualHeight: 24, Visibility: "Visible"})
	panel.AddVisualChild(label)

	submit := demotoolkit.New("Button", "SubmitButton")
	submit.SetProperty("Content", "Submit", "Local")
	submit.SetProperty("IsEnabled", true, "Local")
	submit.SetStyle(demotoolkit.Style{
		Key: "PrimaryButtonStyle", TargetType: "Button",
		Setters: map[string]any{"Background": "#FF3B82F6", "Foreground": "#FFFFFFFF"},
	})
	submit.SetLayout(demotoolkit.Layout{ActualWidth: 100, ActualHeight: 32, Visibility: "Visible"})
	panel.AddVisualChild(submit)

	status := demotoolkit.New("TextBlock", "StatusLabel")
	status.SetProperty("Text", "Ready", "Local")
	status.SetBinding("Text", demotoolkit.Binding{
		Path: "Status.Message", Mode: "OneWay", Status: "Error",
		HasError: true, ErrorMessage: "BindingExpression path error: 'Message' property not found on 'StatusViewModel'",
	})
	status.SetLayout(demotoolkit.Layout{ActualWidth: 200, ActualHeight: 18, Visibility: "Visible"})
	panel.AddVisualChild(status)

	tk := demotoolkit.NewToolkit()
	tk.AddRoot(window)
	return tk
}
