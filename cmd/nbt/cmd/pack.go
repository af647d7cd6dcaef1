package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Rusty-Quartz/quartz-nbt/nbt"
	"github.com/Rusty-Quartz/quartz-nbt/nbtio"
)

var (
	packCompression string
	packRootName    string
	packOutput      string
	packLevel       int
)

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack [file]",
	Short: "Parse SNBT text and write a binary NBT file",
	Long: `Parse SNBT text and write a binary NBT file.

The root of the SNBT document becomes the named root tag of the binary
document; its name defaults to empty and is set with --root-name.

Example:
  nbt pack -o level.dat level.snbt
  echo '{foo:5b}' | nbt pack --compression none -o out.nbt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flavor, err := nbtio.ParseFlavor(packCompression)
		if err != nil {
			return err
		}

		in, source, err := openInput(args)
		if err != nil {
			return err
		}
		defer in.Close()

		text, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read %s: %w", source, err)
		}
		tag, err := nbt.Parse(string(text))
		if err != nil {
			return fmt.Errorf("parse %s: %w", source, err)
		}

		out := os.Stdout
		if packOutput != "" && packOutput != "-" {
			f, err := os.Create(packOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		if err := nbtio.WriteLevel(out, packRootName, tag, flavor, packLevel); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		log.Debug().
			Str("source", source).
			Str("compression", flavor.String()).
			Str("root_name", packRootName).
			Msg("packed document")
		return nil
	},
}

func init() {
	packCmd.Flags().StringVarP(&packCompression, "compression", "c", "gzip", "Compression flavor: none, gzip, or zlib")
	packCmd.Flags().StringVarP(&packRootName, "root-name", "n", "", "Name of the root tag")
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "", "Output file (default stdout)")
	packCmd.Flags().IntVar(&packLevel, "level", -1, "Compression level, -1 for the default")
	rootCmd.AddCommand(packCmd)
}
