package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lendfriend/lendfund/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.NewInfo("lendfund")
			if flagJSON {
				out, err := info.JSON()
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}
			fmt.Println(info.String())
			return nil
		},
	}
}
