package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ntfsundeletetree/internal/adapters/ntfsundelete"
	"ntfsundeletetree/internal/adapters/sqlite"
	"ntfsundeletetree/internal/application/commands"
	"ntfsundeletetree/internal/config"
	"ntfsundeletetree/internal/domain"
	"ntfsundeletetree/internal/logger"
)

var (
	toolPath    string
	catalogPath string
	verbose     bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ntfsundeletetree",
	Short: "Recover deleted files from NTFS with their directory structure",
	Long: `ntfsundeletetree scans an NTFS volume or image with ntfsundelete and
recreates the deleted files it finds in their original directory layout.

Parent directories missing from the scan are recreated as placeholders named
after their inode. Only files reported as 100% recoverable are written, and
empty directories are never created.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if toolPath != "" {
			cfg.NtfsUndelete = toolPath
		}
		if catalogPath != "" {
			cfg.Catalog = catalogPath
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = verbose
		}
		logger.SetVerbose(cfg.Verbose)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&toolPath, "ntfsundelete", "", "path to the ntfsundelete binary (default "+config.DefaultNtfsUndelete+")")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "SQLite catalog to reuse and store scans in")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace tree reconstruction")
}

func newClient() *ntfsundelete.Client {
	return ntfsundelete.NewClient(ntfsundelete.WithBinary(cfg.NtfsUndelete))
}

// openCatalog opens the configured catalog. It returns nil when none is
// configured.
func openCatalog() (*sqlite.Catalog, error) {
	if cfg.Catalog == "" {
		return nil, nil
	}
	catalog := sqlite.NewCatalog()
	if err := catalog.Open(cfg.Catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// loadRecords scans image, or reuses its latest stored scan when a
// catalog is configured
func loadRecords(ctx context.Context, image string, rescan bool) (*commands.LoadRecordsResult, error) {
	catalog, err := openCatalog()
	if err != nil {
		return nil, err
	}

	loadCmd := commands.NewLoadRecordsCommand(newClient(), nil, image)
	if catalog != nil {
		defer catalog.Close()
		loadCmd = commands.NewLoadRecordsCommand(newClient(), catalog, image)
	}
	loadCmd.Rescan = rescan

	return loadCmd.Execute(ctx)
}

// loadForest loads the records of image and builds their forest
func loadForest(ctx context.Context, image string) (*domain.Forest, error) {
	loaded, err := loadRecords(ctx, image, false)
	if err != nil {
		return nil, err
	}
	return commands.NewBuildForestCommand(loaded.Records).Execute(ctx)
}

// rootInode returns the value of an inode flag when it was given
func rootInode(cmd *cobra.Command, name string, value int64) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return domain.Int64(value)
}
