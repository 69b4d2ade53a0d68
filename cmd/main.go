package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jayline-services/assist/cmd/service"
)

func main() {
	root := &cobra.Command{
		Use:   "assist",
		Short: "jay line services site assistant",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("empty command")
		},
	}

	root.AddCommand(service.NewCommand(), service.NewIndexCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
