package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/spf13/cobra"

	"github.com/voicerunner/voicerunner/corpus"
)

var statsServerURL string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate corpus statistics from a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(statsServerURL + "/api/stats")
		if err != nil {
			return fmt.Errorf("fetching stats: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("stats request failed: %s", resp.Status)
		}

		var report corpus.StatsReport
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			return fmt.Errorf("decoding stats: %w", err)
		}

		fmt.Printf("Sessions:        %d\n", report.TotalSessions)
		fmt.Printf("Recordings:      %d\n", report.TotalRecordings)
		fmt.Printf("Unique players:  %d\n", report.TotalPlayersUnique)
		printBreakdown("Phrase categories", report.PhraseBreakdown)
		printBreakdown("Registers", report.RegisterBreakdown)
		return nil
	},
}

func printBreakdown(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-20s %d\n", k, counts[k])
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsServerURL, "server", "http://localhost:8000", "Base URL of the running server")
}
