package main

import (
	"os"

	"github.com/philipparndt/stlparse/internal/output"
	"github.com/philipparndt/stlparse/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "stlparse [file]",
		Short: "Stream STL files as structured records",
		Long: `stlparse converts ascii and binary STL (Stereolithography) files into a
stream of records: a format header, one header per solid and one record
per face. Records are written to stdout as JSON lines, warnings and
errors go to stderr. Without a file argument the STL is read from stdin.`,
		Version:       version.GetFullVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return runParse(cmd, args, cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.stlparse.yaml)")
	flags.Bool("ascii", false, "Parse the input as ascii STL")
	flags.Bool("binary", false, "Parse the input as binary STL")
	flags.Bool("discard-excess-vertices", true, "Keep the first 3 vertices of faces with more than 3 vertices instead of dropping the face")
	flags.Bool("no-color", false, "Disable colored diagnostics")

	local := rootCmd.Flags()
	local.BoolP("aggregate", "a", false, "Emit one record per solid containing all faces")
	local.Int64("size", 0, "Expected input size in bytes for progress (default is the file size)")
	local.Bool("yield", false, "Hand control back between chunks instead of parsing them back to back")
	local.Bool("progress", false, "Show parsing progress on stderr")
	local.StringP("output", "o", string(output.JSONL), "Record format: jsonl or yaml")
	local.BoolP("watch", "w", false, "Parse the file again whenever it changes")
	local.String("profile", "", "Write a CPU profile to this directory")

	for _, fs := range []*pflag.FlagSet{flags, local} {
		if err := v.BindPFlags(fs); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(newInfoCmd(v))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		output.NewDiagnostics(os.Stderr, false).Error(err)
		os.Exit(1)
	}
}
