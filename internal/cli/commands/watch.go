// pulse watch — re-run the suite on an interval in a live dashboard.
package commands

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/f9-o/pulse/internal/suite"
	"github.com/f9-o/pulse/internal/tui"
)

func NewWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the suite on an interval in a live dashboard",
		Example: `  pulse watch
  pulse watch --interval 10s`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			spec := rt.Config.Suite
			suite.ApplyTimeout(&spec, rt.Flags.Timeout)
			if rt.Flags.Timeout == 0 {
				suite.ApplyTimeout(&spec, rt.Config.Check.Timeout)
			}

			model := tui.New(tui.Config{
				Suite:    spec,
				Interval: interval,
			})

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("watch ui: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "Delay between suite runs")
	return cmd
}
