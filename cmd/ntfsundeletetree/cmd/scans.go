package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var scansCmd = &cobra.Command{
	Use:   "scans",
	Short: "List the scans stored in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		if catalog == nil {
			return errors.New("no catalog configured, use --catalog")
		}
		defer catalog.Close()

		scans, err := catalog.ListScans()
		if err != nil {
			return err
		}
		if len(scans) == 0 {
			fmt.Println("No scans stored.")
			return nil
		}

		for _, s := range scans {
			fmt.Printf("%s  %-30s  %s  %d records\n",
				s.ID, s.Image, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.RecordCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scansCmd)
}
