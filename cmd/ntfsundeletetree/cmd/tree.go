package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ntfsundeletetree/internal/application/commands"
	"ntfsundeletetree/internal/logger"
)

var treeRootInode int64

var treeCmd = &cobra.Command{
	Use:   "tree <image>",
	Short: "Display the reconstructed directory tree",
	Long: `Display the tree rebuilt from the deleted records of an image, one
"inode: name" line per node, indented by depth.

Examples:
  ntfsundeletetree tree disk.img
  ntfsundeletetree tree disk.img --root-inode 1234`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		forest, err := loadForest(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		root := rootInode(cmd, "root-inode", treeRootInode)
		if root != nil {
			if _, ok := forest.Node(*root); !ok {
				logger.Warn("inode %d is not in the tree", *root)
				return nil
			}
		}

		fmt.Print(commands.RenderTree(forest, root))
		return nil
	},
}

func init() {
	treeCmd.Flags().Int64Var(&treeRootInode, "root-inode", 0, "only print the subtree below this inode")
	rootCmd.AddCommand(treeCmd)
}
