package main

import (
	"fmt"

	"github.com/dhamidi/cafebabe/classpath"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Decode every class file under the given paths and report failures",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []classpath.Entry
			for _, path := range args {
				loaded, err := classpath.Load(path)
				if err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				entries = append(entries, loaded...)
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, result := range classpath.DecodeAll(entries, jobs) {
				if result.Err != nil {
					failed++
					fmt.Fprintf(out, "FAIL\t%s\t%v\n", result.Entry.Name, result.Err)
					continue
				}
				fmt.Fprintf(out, "ok\t%s\t%s\n", result.Entry.Name, result.Class.Version)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%d classes, %d failed\n", len(entries), failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d class files failed to decode", failed, len(entries))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of parallel decoders (0 = one per CPU)")

	return cmd
}
