package main

import (
	"fmt"

	"github.com/dhamidi/cafebabe/classfile"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tool version and the class file versions it accepts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			lo := classfile.Version{Major: classfile.MinMajorVersion}
			hi := classfile.Version{Major: classfile.MaxMajorVersion}
			fmt.Fprintf(cmd.OutOrStdout(), "cafebabe %s\nclass files %d (%s) through %d (%s)\n",
				version, lo.Major, lo.Release(), hi.Major, hi.Release())
		},
	}
}
