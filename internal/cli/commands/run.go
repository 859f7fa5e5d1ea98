// pulse run — execute the smoke suite once.
package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	v1 "github.com/f9-o/pulse/api/v1"
	"github.com/f9-o/pulse/internal/probe"
	"github.com/f9-o/pulse/internal/suite"
	"github.com/f9-o/pulse/pkg/pprint"
)

func NewRunCmd() *cobra.Command {
	var strict bool
	var noSave bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the smoke suite once and print per-check results",
		Example: `  pulse run
  pulse run --strict
  pulse run --json
  pulse run -c ./pulse.yaml -t 10s`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			spec := rt.Config.Suite
			suite.ApplyTimeout(&spec, rt.Flags.Timeout)
			if rt.Flags.Timeout == 0 {
				suite.ApplyTimeout(&spec, rt.Config.Check.Timeout)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			prober := probe.New(rt.Log)

			var opts []suite.Option
			if !rt.Flags.JSONOutput {
				pprint.Header(fmt.Sprintf("Suite: %s", spec.Name))
				for i, chk := range spec.Checks {
					pprint.Step(i+1, len(spec.Checks), "%s (%s)", chk.Name, chk.Kind)
				}
				fmt.Println()

				var spin *pprint.Spinner
				opts = append(opts,
					suite.WithStartFunc(func(i, total int, chk v1.CheckSpec) {
						spin = pprint.NewSpinner(fmt.Sprintf("probing %s", chk.Name))
						spin.Start()
					}),
					suite.WithResultFunc(func(i, total int, res v1.CheckResult) {
						spin.StopClear()
						suite.PrintResult(res)
					}),
				)
			}

			report := suite.New(prober, rt.Log, opts...).Run(ctx, spec)

			if !noSave {
				if err := rt.History.PutRun(suite.ToRecord(report)); err != nil {
					rt.Log.Warn("could not persist run record", "err", err)
					if !rt.Flags.JSONOutput {
						pprint.Warn("run not recorded in history: %v", err)
					}
				}
			}

			if rt.Flags.JSONOutput {
				return suite.WriteJSON(os.Stdout, report)
			}
			suite.PrintSummary(report)

			// The suite itself never aborts early and the process exits zero
			// after completing all checks; --strict opts in to a failing code.
			if strict && !report.Passed() {
				return fmt.Errorf("%d of %d checks failed", report.Failed, len(report.Results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any check fails")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record this run in history")
	return cmd
}
