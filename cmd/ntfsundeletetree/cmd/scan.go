package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ntfsundeletetree/internal/domain"
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Scan an image and summarize the deleted records",
	Long: `Run ntfsundelete over an image and print a summary of what it found.
With --catalog the records are stored for later undelete, tree and browse runs.

Example:
  ntfsundeletetree scan disk.img --catalog ~/.cache/ntfsundeletetree/scans.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadRecords(cmd.Context(), args[0], true)
		if err != nil {
			return err
		}

		var files, dirs, recoverable int
		for _, id := range loaded.Records.IDs() {
			rec, _ := loaded.Records.Get(id)
			switch rec.Kind {
			case domain.KindFile:
				files++
				if rec.FullyRecoverable() {
					recoverable++
				}
			case domain.KindDirectory:
				dirs++
			}
		}

		fmt.Printf("%d records: %d files (%d fully recoverable), %d directories\n",
			loaded.Records.Len(), files, recoverable, dirs)
		if loaded.Scan != nil {
			fmt.Printf("Stored as scan %s\n", loaded.Scan.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
