package pose

import "github.com/jakecoffman/cp"

// Node is a transform in a parent/child hierarchy. A node never owns its
// parent; detaching a child only clears the link.
type Node struct {
	Name string

	parent *Node
	local  cp.Transform
}

// NewNode creates a node at the given local position and rotation (radians).
func NewNode(name string, pos cp.Vector, angle float64) *Node {
	return &Node{Name: name, local: cp.NewTransformRigid(pos, angle)}
}

// SetParent attaches n under parent, keeping n's local transform.
func (n *Node) SetParent(parent *Node) {
	if n == nil || parent == n {
		return
	}
	n.parent = parent
}

// Parent returns the node's parent, or nil.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// SetLocal replaces the local transform with a rigid transform.
func (n *Node) SetLocal(pos cp.Vector, angle float64) {
	if n == nil {
		return
	}
	n.local = cp.NewTransformRigid(pos, angle)
}

// World composes the transforms from the root down to n.
func (n *Node) World() cp.Transform {
	if n == nil {
		return cp.NewTransformIdentity()
	}
	t := n.local
	for p := n.parent; p != nil; p = p.parent {
		t = p.local.Mult(t)
	}
	return t
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() cp.Vector {
	return n.World().Point(cp.Vector{})
}
