package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/milesj/packager/internal/app"
	"github.com/milesj/packager/internal/config"
	"github.com/milesj/packager/internal/domain"
	"github.com/milesj/packager/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	source  string
	dryRun  bool
)

func main() {
	// A local .env may carry PACKAGER_* overrides
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "packager [items...]",
	Short: "Package JavaScript and CSS assets from a manifest",
	Long: `Packager resolves the items declared in a package manifest, following
their requires and provides, then minifies and concatenates them into a
single file with an optional documentation header.

With no items, every item in the manifest is packaged. The manifest is
read from package.json (or package.yaml, package.yml, package.toml) in the
source directory.`,
	Version:       version.Short(),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.packager/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&source, "source", "s", ".", "Directory containing the manifest")
	rootCmd.PersistentFlags().StringP("manifest", "m", "", "Manifest file (overrides --source)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Simulate without writing files")

	// Packaging flags
	rootCmd.Flags().StringP("output", "o", "", "Output file (default is the manifest outputFile)")
	rootCmd.Flags().StringSliceP("filter-type", "t", nil, "Only package top-level items of these types")
	rootCmd.Flags().Bool("no-docblocks", false, "Omit the documentation header and per-item comments")
	rootCmd.Flags().Bool("no-prepend-path", false, "Do not resolve the output path against the manifest directory")
	rootCmd.Flags().Bool("strict", false, "Fail when an item type has no minifier")
	rootCmd.Flags().Bool("stdout", false, "Print the package to stdout even when writing a file")
	rootCmd.Flags().Bool("progress", false, "Show a progress bar")

	// Bind flags to viper
	_ = viper.BindPFlag("packaging.manifest", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("packaging.filter_type", rootCmd.Flags().Lookup("filter-type"))
	_ = viper.BindPFlag("packaging.strict_minify", rootCmd.Flags().Lookup("strict"))

	itemsCmd.Flags().Bool("json", false, "Print the catalog as JSON in declaration order")

	// Add subcommands
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(versionCmd)
}

// newOrchestrator loads configuration and opens the manifest
func newOrchestrator(cmd *cobra.Command, common domain.CommonOptions) (*app.Orchestrator, error) {
	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if noDoc, _ := cmd.Flags().GetBool("no-docblocks"); noDoc {
		cfg.Packaging.DocBlocks = false
	}
	if noPrepend, _ := cmd.Flags().GetBool("no-prepend-path"); noPrepend {
		cfg.Packaging.PrependPath = false
	}

	common.Verbose = verbose
	common.DryRun = dryRun

	orch, err := app.NewOrchestrator(app.OrchestratorOptions{
		CommonOptions: common,
		Config:        cfg,
		Source:        source,
		LogOutput:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	return orch, nil
}

func run(cmd *cobra.Command, args []string) error {
	progress, _ := cmd.Flags().GetBool("progress")

	orch, err := newOrchestrator(cmd, domain.CommonOptions{Progress: progress})
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	text, err := orch.Run(args, output)
	if err != nil {
		return err
	}

	toStdout, _ := cmd.Flags().GetBool("stdout")
	if toStdout || dryRun || (output == "" && orch.Manifest().OutputFile == "") {
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}
	return nil
}

var archiveCmd = &cobra.Command{
	Use:   "archive <output> <file>...",
	Short: "Bundle files into a zip archive",
	Long: `Bundle files into a zip archive next to the manifest.

Each file is given as path[:name[:folder]]. Paths are relative to the
manifest directory. {name} and {version} in the output, paths and names are
replaced with the manifest's values.

Example:
  packager archive build/{name}-{version} build/{name}.min.js LICENSE:LICENSE.txt:docs`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, err := newOrchestrator(cmd, domain.CommonOptions{})
		if err != nil {
			return err
		}

		path, err := orch.Archive(args[0], args[1:])
		if err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the items declared in the manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, err := newOrchestrator(cmd, domain.CommonOptions{})
		if err != nil {
			return err
		}

		m := orch.Manifest()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(m.Contents, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode items: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(strings.TrimSpace(m.Name+" "+m.Version)))
		fmt.Fprint(cmd.OutOrStdout(), renderItems(orch.Items()))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
