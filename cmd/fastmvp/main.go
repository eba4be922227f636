package main

import (
	"os"

	"github.com/Hermes08/FastMVP-Core/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.NewCmd())
	rootCmd.AddCommand(commands.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
