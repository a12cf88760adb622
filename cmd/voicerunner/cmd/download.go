package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/voicerunner/voicerunner/corpus"
)

var (
	downloadServerURL string
	downloadOutput    string
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the full corpus export from a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(downloadServerURL + "/api/export")
		if err != nil {
			return fmt.Errorf("fetching export: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("export request failed: %s", resp.Status)
		}

		var snapshot corpus.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
			return fmt.Errorf("decoding export: %w", err)
		}

		out := downloadOutput
		if out == "" {
			out = fmt.Sprintf("voice_data_export_%s.json", time.Now().UTC().Format("20060102_150405"))
		}
		data, err := json.MarshalIndent(&snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding export: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}

		fmt.Printf("Exported %d sessions and %d recordings to %s\n",
			len(snapshot.Sessions), len(snapshot.Recordings), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVar(&downloadServerURL, "server", "http://localhost:8000", "Base URL of the running server")
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Output file (default voice_data_export_<timestamp>.json)")
}
