package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ntfsundeletetree/internal/adapters/filesystem"
	"ntfsundeletetree/internal/adapters/tui"
	"ntfsundeletetree/internal/application/commands"
)

var browseFromDate string

var browseCmd = &cobra.Command{
	Use:   "browse <image> [outdir]",
	Short: "Browse the reconstructed tree interactively",
	Long: `Browse the tree rebuilt from the deleted records of an image.

Press u on a node to pick it. With outdir given, the picked subtree is
undeleted there; otherwise its inode is printed.

Examples:
  ntfsundeletetree browse disk.img
  ntfsundeletetree browse disk.img recovered`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		image := args[0]
		var outdir string
		if len(args) == 2 {
			outdir = args[1]
			if err := commands.CheckDestination(outdir); err != nil {
				return err
			}
		}
		floor, err := dateFloor(browseFromDate)
		if err != nil {
			return err
		}

		loaded, err := loadRecords(cmd.Context(), image, false)
		if err != nil {
			return err
		}
		forest, err := commands.NewBuildForestCommand(loaded.Records).Execute(cmd.Context())
		if err != nil {
			return err
		}

		app := tui.NewApp(forest, fmt.Sprintf("%s, %d records", image, forest.Len()))
		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return err
		}

		id, ok := app.Selected()
		if !ok {
			return nil
		}
		if outdir == "" {
			fmt.Println(id)
			return nil
		}

		writer := filesystem.NewMaterializer(newClient(), image)
		undelete := commands.NewUndeleteCommand(writer, loaded.Records, outdir)
		undelete.RootID = &id
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

func init() {
	browseCmd.Flags().StringVar(&browseFromDate, "from-date", "", "skip files last modified before this ISO date or date-time")
	rootCmd.AddCommand(browseCmd)
}
