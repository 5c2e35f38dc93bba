package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/faze79/WPFVisualTreeMcp/internal/config"
	"github.com/faze79/WPFVisualTreeMcp/internal/ipc"
	"github.com/faze79/WPFVisualTreeMcp/pkg/bridge"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// watchCmd opens a direct, long-lived connection to the inspector endpoint
// and renders live PropertyChanged notifications in a terminal UI.
// pkg/bridge.Invoke intentionally opens one connection per call (see
// calls.go's WatchProperty doc comment), so this command talks to the
// endpoint's wire protocol directly instead of going through the Bridge
// for the notification stream; it still uses the Bridge to resolve and
// validate the target process.
func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a property's live value in an interactive terminal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, _ := cmd.Flags().GetString("handle")
			property, _ := cmd.Flags().GetString("property")
			configPath, _ := cmd.Flags().GetString("config")

			cfg := &config.Config{}
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			b := bridge.New(bridge.WithConfig(cfg))
			pid, _ := cmd.Flags().GetInt32("pid")
			name, _ := cmd.Flags().GetString("name")
			if err := b.Attach(cmd.Context(), pid, name); err != nil {
				return err
			}

			conn, err := ipc.Dial(ipc.Name(cfg.ResolvedRendezvousPrefix(), int(b.ProcessID())), cfg.ResolvedConnectTimeout())
			if err != nil {
				return fmt.Errorf("dial inspector endpoint: %w", err)
			}

			req := wire.WatchPropertyRequest{
				RequestID:     bridge.NewRequestID(),
				ElementHandle: handle,
				PropertyName:  property,
			}
			payload, err := json.Marshal(req)
			if err != nil {
				return err
			}
			frame, err := json.Marshal(wire.RequestEnvelope{Type: wire.KindWatchProperty, Data: payload})
			if err != nil {
				return err
			}
			if err := wire.NewFrameWriter(conn).WriteFrame(frame); err != nil {
				conn.Close()
				return fmt.Errorf("send watch request: %w", err)
			}

			fr := wire.NewFrameReader(conn)
			first, err := fr.ReadFrame()
			if err != nil {
				conn.Close()
				return fmt.Errorf("read watch response: %w", err)
			}
			var watchResp wire.WatchPropertyResponse
			if err := json.Unmarshal(first, &watchResp); err != nil {
				conn.Close()
				return fmt.Errorf("decode watch response: %w", err)
			}
			if !watchResp.Success {
				conn.Close()
				fail("%s", watchResp.Error)
				return nil
			}

			msgCh := make(chan tea.Msg, 16)
			go pumpNotifications(fr, msgCh)

			sp := spinner.New(spinner.WithSpinner(spinner.Dot))
			sp.Style = watchHistStyle

			m := watchModel{
				property:      property,
				elementHandle: handle,
				value:         watchResp.InitialValue,
				msgCh:         msgCh,
				spinner:       sp,
			}
			p := tea.NewProgram(m)
			_, runErr := p.Run()
			conn.Close()
			return runErr
		},
	}

	elementHandleFlag(cmd)
	cmd.Flags().String("property", "", "property name to watch")
	_ = cmd.MarkFlagRequired("property")
	return cmd
}

// pumpNotifications reads frames off fr for the life of the connection,
// decoding each as a PropertyChanged notification and forwarding it to
// msgCh, until the connection closes. A frame that fails to decode is
// skipped.
func pumpNotifications(fr *wire.FrameReader, msgCh chan<- tea.Msg) {
	for {
		frame, err := fr.ReadFrame()
		if err != nil {
			msgCh <- watchClosedMsg{err: err}
			return
		}
		var n wire.PropertyChangedNotification
		if err := json.Unmarshal(frame, &n); err != nil {
			continue
		}
		msgCh <- propertyChangedMsg{notification: n}
	}
}

type propertyChangedMsg struct{ notification wire.PropertyChangedNotification }
type watchClosedMsg struct{ err error }

var (
	watchBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	watchValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	watchHistStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const maxWatchHistory = 12

type watchModel struct {
	property      string
	elementHandle string
	value         string
	history       []string
	closed        bool
	err           error
	msgCh         chan tea.Msg
	spinner       spinner.Model
}

func waitForWatchMsg(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(waitForWatchMsg(m.msgCh), m.spinner.Tick)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case propertyChangedMsg:
		ts, err := time.Parse(time.RFC3339Nano, msg.notification.Timestamp)
		stamp := msg.notification.Timestamp
		if err == nil {
			stamp = ts.Format("15:04:05.000")
		}
		m.value = msg.notification.NewValue
		line := fmt.Sprintf("%s  %s -> %s", stamp, msg.notification.OldValue, msg.notification.NewValue)
		m.history = append(m.history, line)
		if len(m.history) > maxWatchHistory {
			m.history = m.history[len(m.history)-maxWatchHistory:]
		}
		return m, waitForWatchMsg(m.msgCh)
	case watchClosedMsg:
		m.closed = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if len(m.history) > 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	title := watchTitleStyle.Render(fmt.Sprintf("%s.%s", m.elementHandle, m.property))
	current := "current value: " + watchValueStyle.Render(m.value)

	body := title + "\n" + current + "\n"
	if len(m.history) > 0 {
		body += "\n" + watchHistStyle.Render("recent changes:") + "\n"
		for _, line := range m.history {
			body += watchHistStyle.Render(line) + "\n"
		}
	} else if !m.closed {
		body += "\n" + m.spinner.View() + " " + watchHistStyle.Render("waiting for a change...") + "\n"
	}
	body += "\n" + watchHistStyle.Render("press q to quit")
	if m.closed {
		body += "\n" + errorColor.Sprint("connection closed")
	}
	return watchBoxStyle.Render(body)
}
