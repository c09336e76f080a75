package commands

import (
	"fmt"
	"strings"

	"ntfsundeletetree/internal/domain"
)

// RenderTree prints "id: name" per node, indented two spaces per level.
// With rootID only that subtree is printed.
func RenderTree(forest *domain.Forest, rootID *int64) string {
	roots := forest.Roots
	if rootID != nil {
		roots = []int64{*rootID}
	}

	var b strings.Builder
	for _, id := range roots {
		forest.Walk(id, func(n *domain.ForestNode, depth int) bool {
			fmt.Fprintf(&b, "%s%d: %s\n", strings.Repeat(" ", depth*2), n.Record.ID, n.Record.Name)
			return true
		})
	}
	return b.String()
}
