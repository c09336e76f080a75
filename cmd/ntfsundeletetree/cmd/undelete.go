package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ntfsundeletetree/internal/adapters/filesystem"
	"ntfsundeletetree/internal/application"
	"ntfsundeletetree/internal/application/commands"
	"ntfsundeletetree/internal/domain"
)

var (
	undeleteRootInode int64
	undeleteFromDate  string
	undeleteRescan    bool
)

var undeleteCmd = &cobra.Command{
	Use:   "undelete <image> <outdir>",
	Short: "Recover deleted files into a new directory tree",
	Long: `Scan an NTFS volume or image and recreate the deleted files under outdir,
keeping their directory structure. outdir must not exist.

Examples:
  ntfsundeletetree undelete /dev/sdb1 recovered
  ntfsundeletetree undelete disk.img recovered --root-inode 1234
  ntfsundeletetree undelete disk.img recovered --from-date 2023-06-01`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, outdir := args[0], args[1]

		// Fail before the scan, which can take a long time
		if err := commands.CheckDestination(outdir); err != nil {
			return err
		}

		floor, err := dateFloor(undeleteFromDate)
		if err != nil {
			return err
		}

		loaded, err := loadRecords(cmd.Context(), image, undeleteRescan)
		if err != nil {
			return err
		}

		writer := filesystem.NewMaterializer(newClient(), image)
		undelete := commands.NewUndeleteCommand(writer, loaded.Records, outdir)
		undelete.RootID = rootInode(cmd, "root-inode", undeleteRootInode)
		undelete.DateFloor = floor

		result, err := undelete.Execute(cmd.Context())
		if err != nil {
			return err
		}

		printFailures(result.Report)
		fmt.Println(result.Message)
		return nil
	},
}

func dateFloor(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := application.ParseDateFloor(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func printFailures(report *domain.Report) {
	for _, f := range report.Failures() {
		reason := f.Reason
		if f.Err != nil {
			reason = f.Err.Error()
		}
		fmt.Fprintf(os.Stderr, "failed: %d %s: %s\n", f.ID, f.Path, reason)
	}
}

func init() {
	undeleteCmd.Flags().Int64Var(&undeleteRootInode, "root-inode", 0, "only recover the subtree below this inode")
	undeleteCmd.Flags().StringVar(&undeleteFromDate, "from-date", "", "skip files last modified before this ISO date or date-time")
	undeleteCmd.Flags().BoolVar(&undeleteRescan, "rescan", false, "scan again even if the catalog has a stored scan")
	rootCmd.AddCommand(undeleteCmd)
}
