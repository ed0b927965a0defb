package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the librarium version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("librarium %s\n", Version)
	},
}
