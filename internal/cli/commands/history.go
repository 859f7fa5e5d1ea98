// pulse history — list past suite runs recorded in the history DB.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/f9-o/pulse/internal/suite"
	"github.com/f9-o/pulse/pkg/errs"
	"github.com/f9-o/pulse/pkg/pprint"
)

func NewHistoryCmd() *cobra.Command {
	var limit int
	var show string
	var prune int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past suite runs",
		Example: `  pulse history
  pulse history --limit 5
  pulse history --show <run-id>
  pulse history --prune 50`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			if prune > 0 {
				n, err := rt.History.Prune(prune)
				if err != nil {
					return errs.Wrap(err, errs.ErrHistoryWrite, "history.prune")
				}
				pprint.Success("Pruned %d run(s), kept the %d most recent", n, prune)
				return nil
			}

			if show != "" {
				rec, err := rt.History.GetRun(show)
				if err != nil {
					return errs.Wrap(err, errs.ErrHistoryRead, "history.get")
				}
				if rec == nil {
					return fmt.Errorf("run %q not found", show)
				}
				if rt.Flags.JSONOutput {
					return json.NewEncoder(os.Stdout).Encode(rec)
				}
				pprint.Header(fmt.Sprintf("Run %s", rec.ID))
				pprint.KV("Suite    ", rec.Suite)
				pprint.KV("Started  ", rec.Started.Local().Format(time.RFC1123))
				pprint.KV("Elapsed  ", rec.Elapsed.Round(time.Millisecond).String())
				fmt.Println()
				for _, res := range rec.Results {
					suite.PrintResult(res)
				}
				return nil
			}

			recs, err := rt.History.ListRuns(limit)
			if err != nil {
				return errs.Wrap(err, errs.ErrHistoryRead, "history.list")
			}

			if rt.Flags.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(recs)
			}

			if len(recs) == 0 {
				pprint.Info("No runs recorded yet. Try: pulse run")
				return nil
			}

			tbl := pprint.NewTable("ID", "SUITE", "STARTED", "OK", "FAILED", "SKIPPED", "ELAPSED")
			for _, r := range recs {
				tbl.AddRow(
					shortID(r.ID),
					r.Suite,
					r.Started.Local().Format("2006-01-02 15:04:05"),
					fmt.Sprintf("%d", r.OKCount),
					fmt.Sprintf("%d", r.Failed),
					fmt.Sprintf("%d", r.Skipped),
					r.Elapsed.Round(time.Millisecond).String(),
				)
			}
			tbl.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 = all)")
	cmd.Flags().StringVar(&show, "show", "", "Show the full results of one run by ID")
	cmd.Flags().IntVar(&prune, "prune", 0, "Delete all but the N most recent runs")
	return cmd
}

// shortID trims a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
