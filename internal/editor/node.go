package editor

import (
	"sort"

	"github.com/pstruik/phraser/internal/model"
)

// Node is the presentation-side mirror of one entity. It holds a weak
// reference to the entity (lookup only, never lifetime control) and mirrors
// the entity tree's structure. Nodes are created and destroyed in lockstep
// with entity create/delete/move, always by the synchronizer.
type Node struct {
	Entity   model.Entity
	Parent   *Node
	Children []*Node
}

// Display is the node's visual label.
func (n *Node) Display() string {
	return n.Entity.Display()
}

// newNode builds the node mirror for e, recursively for folders, and
// registers every created node in the index.
func newNode(e model.Entity, parent *Node, index map[string]*Node) *Node {
	n := &Node{Entity: e, Parent: parent}
	index[e.EntityID()] = n
	if f, ok := e.(*model.Folder); ok {
		for _, sub := range f.Folders {
			n.Children = append(n.Children, newNode(sub, n, index))
		}
		for _, item := range f.Items {
			n.Children = append(n.Children, newNode(item, n, index))
		}
	}
	sortNodes(n.Children)
	return n
}

// unregister drops n and all its descendants from the index.
func (n *Node) unregister(index map[string]*Node) {
	delete(index, n.Entity.EntityID())
	for _, c := range n.Children {
		c.unregister(index)
	}
}

// removeChild detaches child from n and reports its former position.
func (n *Node) removeChild(child *Node) int {
	for idx, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:idx], n.Children[idx+1:]...)
			child.Parent = nil
			return idx
		}
	}
	return -1
}

// sortNodes orders siblings lexicographically ascending by display label.
func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(a, b int) bool {
		return nodes[a].Display() < nodes[b].Display()
	})
}
