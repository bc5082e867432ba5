package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/csvbind/pkg/constraint"
	"github.com/dmitrymomot/csvbind/pkg/sanitizer"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the constraint kinds a definition may use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, kind := range constraint.DefaultRegistry().Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), kind)
			}
		},
	}
}

func newConversionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conversions",
		Short: "List the built-in text conversions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range sanitizer.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
