package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	habitsCmd := &cobra.Command{Use: "habits", Short: "Habit operations"}

	habitsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := call(http.MethodGet, "/api/habits", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	})

	var name, habitType, unit, direction string
	var target int
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a habit",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"name":      name,
				"habitType": habitType,
			}
			if unit != "" {
				payload["unit"] = unit
			}
			if direction != "" {
				payload["targetDirection"] = direction
			}
			if cmd.Flags().Changed("target") {
				payload["targetValue"] = target
			}
			data, err := call(http.MethodPost, "/api/habits", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Habit name (required)")
	createCmd.Flags().StringVar(&habitType, "type", "binary", "Habit type: binary or numeric")
	createCmd.Flags().StringVar(&unit, "unit", "", "Measurement unit for numeric habits")
	createCmd.Flags().IntVar(&target, "target", 0, "Target value for numeric habits")
	createCmd.Flags().StringVar(&direction, "direction", "", "Target direction: at_least, at_most or exactly")
	_ = createCmd.MarkFlagRequired("name")
	habitsCmd.AddCommand(createCmd)

	habitsCmd.AddCommand(&cobra.Command{
		Use:   "archive HABIT_ID",
		Short: "Archive a habit without losing its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := call(http.MethodPost, "/api/habits/"+args[0]+"/archive", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	})

	habitsCmd.AddCommand(&cobra.Command{
		Use:   "delete HABIT_ID",
		Short: "Delete a habit and its check-ins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := call(http.MethodDelete, "/api/habits/"+args[0], nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	})

	rootCmd.AddCommand(habitsCmd)
}
