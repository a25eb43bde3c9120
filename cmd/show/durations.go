package show

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/output"
)

var durationsCmd = &cobra.Command{
	Use:   "durations [filter]",
	Short: "List duration options and their resolved ranges",
	Long: `List the selectable duration windows and the from/to range each one
resolves to right now in the local time zone. An optional filter matches
option labels case-insensitively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return showDurations(cmd.OutOrStdout(), analytics.NewResolver(nil, nil), filter, jsonOutput)
	},
}

func init() {
	durationsCmd.Flags().Bool("json", false, "Output in JSON format")
}

type durationRow struct {
	Key     string `json:"key"`
	Minutes int    `json:"minutes"`
	From    string `json:"from"`
	To      string `json:"to"`
}

func durationRows(resolver *analytics.Resolver, filter string) []durationRow {
	options := analytics.FilterDurations(filter)
	rows := make([]durationRow, 0, len(options))
	for _, d := range options {
		rng := resolver.Resolve(&d)
		rows = append(rows, durationRow{Key: d.Key, Minutes: d.Value, From: rng.From, To: rng.To})
	}
	return rows
}

func showDurations(w io.Writer, resolver *analytics.Resolver, filter string, jsonOutput bool) error {
	rows := durationRows(resolver, filter)

	if jsonOutput {
		return output.WriteJSON(w, rows, output.IsTTY())
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintf(w, "No duration matches %q\n", filter)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DURATION\tWINDOW\tFROM\tTO")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Key, time.Duration(r.Minutes)*time.Minute, r.From, r.To)
	}
	return tw.Flush()
}
