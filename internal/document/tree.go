// Package document applies visibility decisions to a page's element tree.
//
// Two strategies: server-side structural removal (Filter) for pages rendered
// with submission data in hand, and a deferred closure batch (Batch) for
// pages whose data arrives after render via a data-ready signal.
package document

import (
	"encoding/json"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

// Element is one node of the page tree. An element owns at most one
// visibility rule; elements without a rule are unconditionally visible.
type Element struct {
	ID       types.ElementID    `json:"id"`
	Kind     string             `json:"kind,omitempty"`
	Rule     *types.ElementRule `json:"rule,omitempty"`
	Children []*Element         `json:"children,omitempty"`
}

// Count returns the number of elements in the subtree rooted at e.
func (e *Element) Count() int {
	if e == nil {
		return 0
	}
	n := 1
	for _, c := range e.Children {
		n += c.Count()
	}
	return n
}

// Walk visits e and every descendant in document order.
func (e *Element) Walk(visit func(*Element)) {
	if e == nil {
		return
	}
	visit(e)
	for _, c := range e.Children {
		c.Walk(visit)
	}
}

// MarshalIndent serializes the tree for output.
func (e *Element) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}
