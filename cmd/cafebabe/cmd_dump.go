package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/cafebabe/classpath"
	"github.com/dhamidi/cafebabe/format"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string
	var withChecksum bool

	cmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Dump the decoded header of a .class file, or of every class in a directory or jar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := classpath.Load(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			if len(entries) == 0 {
				return fmt.Errorf("no class files found in %s", args[0])
			}

			for _, result := range classpath.DecodeAll(entries, 0) {
				if result.Err != nil {
					return fmt.Errorf("decode %s: %w", result.Entry.Name, result.Err)
				}
				src := format.Source{Name: result.Entry.Name}
				if withChecksum {
					src.Checksum = result.Entry.Checksum()
				}
				enc, err := newEncoder(dumpFormat, cmd.OutOrStdout(), src)
				if err != nil {
					return err
				}
				if err := enc.Encode(result.Class); err != nil {
					return fmt.Errorf("encode %s: %w", dumpFormat, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (line, json)")
	cmd.Flags().BoolVar(&withChecksum, "checksum", false, "include a BLAKE3 checksum of each class file")

	return cmd
}

func newEncoder(name string, w io.Writer, src format.Source) (format.Encoder, error) {
	switch name {
	case "line":
		enc := format.NewLineEncoder(w)
		enc.Source = src
		return enc, nil
	case "json":
		enc := format.NewJSONEncoder(w)
		enc.Source = src
		return enc, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected line or json)", name)
	}
}
