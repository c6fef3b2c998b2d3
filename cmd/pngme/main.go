package main

import (
	"fmt"
	"os"

	"github.com/mixcode/pngchunk/internal/commands"
	"github.com/mixcode/pngchunk/internal/config"
	"github.com/mixcode/pngchunk/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pngme: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		cfg        config.Config
	)

	root := &cobra.Command{
		Use:           "pngme",
		Short:         "Hide messages in PNG chunks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := config.ResolvePath(configPath)
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
			observability.InitLogger("pngme", observability.LoggerOptions{
				Level:   cfg.LogLevel,
				NoColor: cfg.NoColor,
			})
			if path != "" {
				log.Debug().Str("path", path).Msg("loaded pngme config")
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (env "+config.EnvConfigPath+")")

	opts := func() commands.Options {
		return commands.Options{
			Overwrite: cfg.Overwrite,
			Textual:   cfg.Textual,
			Summary:   cfg.Summary,
		}
	}

	var overwrite bool
	encodeCmd := &cobra.Command{
		Use:   "encode <file> <chunk-type> <message>",
		Short: "Append a message chunk to a PNG file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := opts()
			if cmd.Flags().Changed("overwrite") {
				o.Overwrite = overwrite
			}
			return commands.Encode(args[0], args[1], args[2], o)
		},
	}
	encodeCmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing chunk of the same type")

	decodeCmd := &cobra.Command{
		Use:   "decode <file> <chunk-type>",
		Short: "Print the message stored in a chunk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Decode(args[0], args[1], cmd.OutOrStdout())
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <file> <chunk-type>",
		Short: "Remove the first chunk of a type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.Remove(args[0], args[1])
			return err
		},
	}

	var summary bool
	printCmd := &cobra.Command{
		Use:   "print <file>",
		Short: "Print every chunk in file order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := opts()
			if cmd.Flags().Changed("summary") {
				o.Summary = summary
			}
			return commands.Print(args[0], cmd.OutOrStdout(), o)
		},
	}
	printCmd.Flags().BoolVar(&summary, "summary", false, "print chunk count and file size first")

	root.AddCommand(encodeCmd, decodeCmd, removeCmd, printCmd)
	return root
}
