package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piyushKumar-1/betterbe/internal/auth"
)

var (
	apiFlag   string
	tokenFlag string
	rootCmd   = &cobra.Command{
		Use:   "habitctl",
		Short: "CLI client for the habit service REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Habit service base URL")
	rootCmd.PersistentFlags().StringVarP(&tokenFlag, "token", "t", auth.LocalDevToken, "Bearer token")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
