// pulse checks — list the checks the current config resolves to.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	v1 "github.com/f9-o/pulse/api/v1"
	"github.com/f9-o/pulse/internal/probe"
	"github.com/f9-o/pulse/pkg/pprint"
)

func NewChecksCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "checks",
		Short:        "List the checks in the configured suite",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			spec := rt.Config.Suite

			if rt.Flags.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(spec)
			}

			pprint.Header(fmt.Sprintf("Suite: %s", spec.Name))
			tbl := pprint.NewTable("#", "NAME", "KIND", "TARGET", "TIMEOUT")
			for i, chk := range spec.Checks {
				timeout := chk.Timeout
				if timeout == 0 {
					timeout = probe.DefaultTimeout
				}
				tbl.AddRow(
					fmt.Sprintf("%d", i+1),
					chk.Name,
					string(chk.Kind),
					checkTarget(chk),
					timeout.Round(time.Millisecond).String(),
				)
			}
			tbl.Render()
			return nil
		},
	}
}

// checkTarget summarises what a check probes, for display.
func checkTarget(chk v1.CheckSpec) string {
	switch chk.Kind {
	case v1.KindHTTP, v1.KindOllamaVersion:
		return chk.URL
	case v1.KindTCP:
		host := chk.Host
		if host == "" {
			host = "localhost"
		}
		return fmt.Sprintf("%s:%d", host, chk.Port)
	case v1.KindCmd:
		return chk.Command
	case v1.KindContainer:
		return chk.Container
	case v1.KindStatic:
		return "-"
	}
	return "-"
}
