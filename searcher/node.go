package searcher

import (
	"fmt"
	"math"
)

type node struct {
	parent   *node
	children map[Action]*node
	order    []Action // insertion order of children, keeps iteration deterministic
	visits   int
	q        float64 // running mean of backed up values
	prior    float64
	u        float64 // exploration term from the last selection
}

func newNode(parent *node, prior float64) *node {
	return &node{
		parent:   parent,
		children: make(map[Action]*node),
		prior:    prior,
	}
}

// selects returns the child with the highest PUCT score. Ties keep the
// earliest expanded child.
func (n *node) selects(exploration float64) (Action, *node, error) {
	if n.isLeaf() {
		return 0, nil, fmt.Errorf("%w: cannot select from a node without children", ErrInvalidState)
	}

	policy := newPUCT(exploration, n.visits)

	var bestAction Action
	var bestChild *node
	maxScore := math.Inf(-1)
	for _, action := range n.order {
		child := n.children[action]
		if score := child.score(policy); score > maxScore {
			maxScore = score
			bestAction = action
			bestChild = child
		}
	}
	return bestAction, bestChild, nil
}

func (n *node) score(policy *puct) float64 {
	score := policy.evaluate(n.q, n.prior, n.visits)
	n.u = score - n.q
	return score
}

// expand adds a child for every action not present yet. Existing children
// keep their statistics.
func (n *node) expand(priors []Prior) {
	for _, prior := range priors {
		if _, ok := n.children[prior.Action]; ok {
			continue
		}
		n.children[prior.Action] = newNode(n, prior.Probability)
		n.order = append(n.order, prior.Action)
	}
}

func (n *node) update(value float64) {
	n.visits++
	n.q += (value - n.q) / float64(n.visits)
}

// updateRecursive backs the value up to the root, flipping its sign at
// every level since players alternate.
func (n *node) updateRecursive(value float64) {
	for node := n; node != nil; node = node.parent {
		node.update(value)
		value = -value
	}
}

func (n *node) isLeaf() bool {
	return len(n.children) == 0
}

func (n *node) isRoot() bool {
	return n.parent == nil
}

// mostVisited returns the child with the highest visit count, earliest expanded on ties
func (n *node) mostVisited() (Action, *node, bool) {
	var bestAction Action
	var bestChild *node
	maxVisits := -1
	for _, action := range n.order {
		if child := n.children[action]; child.visits > maxVisits {
			maxVisits = child.visits
			bestAction = action
			bestChild = child
		}
	}
	return bestAction, bestChild, bestChild != nil
}

// promote detaches the child reached by action and releases the rest of the
// tree. Returns nil if the action was never expanded.
func (n *node) promote(action Action) *node {
	child, ok := n.children[action]
	if !ok {
		return nil
	}
	child.parent = nil
	n.children = nil
	n.order = nil
	return child
}
