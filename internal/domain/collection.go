package domain

// Collection is everything persisted for one project's WBS: the flat node
// array plus the revision used for optimistic concurrency.
type Collection struct {
	ProjectID string
	Revision  int64 // 0 means the collection has never been saved
	Nodes     []Node
}

// Find returns the index of the node with the given id, or -1.
func (c *Collection) Find(id string) int {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of stored nodes.
func (c *Collection) Len() int {
	return len(c.Nodes)
}
