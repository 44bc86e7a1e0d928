package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	syncCmd := &cobra.Command{Use: "sync", Short: "Snapshot sync operations"}

	syncCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show sync state and server-side counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := call(http.MethodGet, "/api/sync/status", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	})

	syncCmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Enable cloud sync for the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := call(http.MethodPost, "/api/sync/enable", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "sync enabled")
			return nil
		},
	})

	syncCmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Disable cloud sync for the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := call(http.MethodPost, "/api/sync/disable", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "sync disabled")
			return nil
		},
	})

	var pushFile string
	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Push a snapshot file to the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(pushFile)
			if err != nil {
				return err
			}
			var snapshot map[string]interface{}
			if err := json.Unmarshal(raw, &snapshot); err != nil {
				return fmt.Errorf("invalid snapshot file: %w", err)
			}
			data, err := call(http.MethodPost, "/api/sync/push", snapshot)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	pushCmd.Flags().StringVarP(&pushFile, "file", "f", "", "Snapshot JSON file (required)")
	_ = pushCmd.MarkFlagRequired("file")
	syncCmd.AddCommand(pushCmd)

	var pullOut string
	pullCmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull the server snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := call(http.MethodGet, "/api/sync/pull", nil)
			if err != nil {
				return err
			}
			if pullOut == "" {
				_, _ = fmt.Fprintln(os.Stdout, string(data))
				return nil
			}
			return os.WriteFile(pullOut, data, 0o644)
		},
	}
	pullCmd.Flags().StringVarP(&pullOut, "out", "o", "", "Write snapshot to file instead of stdout")
	syncCmd.AddCommand(pullCmd)

	rootCmd.AddCommand(syncCmd)
}
