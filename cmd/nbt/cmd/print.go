package cmd

import (
	"bufio"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Rusty-Quartz/quartz-nbt/nbt"
	"github.com/Rusty-Quartz/quartz-nbt/nbtio"
)

var printCompact bool

// printCmd represents the print command
var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Decode a binary NBT file and print it as SNBT",
	Long: `Decode a binary NBT file and print it as SNBT.

Compression is sniffed from the stream header, so gzip, zlib, and
uncompressed files all work without flags.

Example:
  nbt print level.dat
  nbt print --compact servers.dat`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, source, err := openInput(args)
		if err != nil {
			return err
		}
		defer in.Close()

		name, tag, flavor, err := nbtio.ReadAuto(bufio.NewReader(in))
		if err != nil {
			return fmt.Errorf("decode %s: %w", source, err)
		}
		log.Debug().
			Str("source", source).
			Str("compression", flavor.String()).
			Str("root_name", name).
			Msg("decoded document")

		if printCompact {
			fmt.Fprintln(cmd.OutOrStdout(), nbt.Format(tag))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), nbt.FormatPretty(tag))
		}
		return nil
	},
}

func init() {
	printCmd.Flags().BoolVar(&printCompact, "compact", false, "Print single-line SNBT")
	rootCmd.AddCommand(printCmd)
}
