package ast

import "sort"

// Simplify runs the four canonicalization passes in order: collapsing
// unary wrappers, flattening nested n-ary nodes, reordering alternation
// branches, and splicing singleton n-aries. It is idempotent: calling it
// twice in a row leaves the tree (and its fingerprint) unchanged.
func (a *Ast) Simplify() {
	a.simplifyUnaryNodes()
	a.simplifyNAryNodes()
	a.reorderOrNodes()
	a.removeUnaryNAries()
}

func (a *Ast) rootChild() (NodeID, bool) {
	return a.FirstChild(a.root)
}

// simplifyUnaryNodes collapses chains of adjacent unary operators:
// same-same yields the shared operator, any two distinct unary operators
// yield "*".
func (a *Ast) simplifyUnaryNodes() {
	rc, ok := a.rootChild()
	if !ok {
		return
	}
	a.collapseUnary(rc)
}

func (a *Ast) collapseUnary(id NodeID) {
	for _, c := range append([]NodeID(nil), a.children[id]...) {
		a.collapseUnary(c)
	}
	lbl := a.labels[id]
	if !IsUnary(lbl) || lbl == rootLabel {
		return
	}
	for {
		kids := a.children[id]
		if len(kids) != 1 {
			return
		}
		child := kids[0]
		clbl := a.labels[child]
		if !IsUnary(clbl) || clbl == rootLabel {
			return
		}
		merged := clbl
		if clbl != lbl {
			merged = OpStar
		}
		a.labels[id] = merged
		a.SetChildren(id, append([]NodeID(nil), a.children[child]...))
		a.RemoveNode(child)
		lbl = merged
	}
}

// simplifyNAryNodes flattens a chain of n-ary nodes sharing the same
// operator label into a single node.
func (a *Ast) simplifyNAryNodes() {
	rc, ok := a.rootChild()
	if !ok {
		return
	}
	a.flattenNAry(rc)
}

func (a *Ast) flattenNAry(id NodeID) {
	for _, c := range append([]NodeID(nil), a.children[id]...) {
		a.flattenNAry(c)
	}
	lbl := a.labels[id]
	if !IsNAry(lbl) {
		return
	}
	changed := true
	for changed {
		changed = false
		var next []NodeID
		for _, c := range a.children[id] {
			if a.labels[c] == lbl {
				next = append(next, a.children[c]...)
				a.RemoveNode(c)
				changed = true
			} else {
				next = append(next, c)
			}
		}
		a.SetChildren(id, next)
	}
}

// reorderOrNodes sorts the children of every "|" node by the prefix-string
// of their subtree, giving a canonical order for fingerprinting.
func (a *Ast) reorderOrNodes() {
	rc, ok := a.rootChild()
	if !ok {
		return
	}
	a.reorderOr(rc)
}

func (a *Ast) reorderOr(id NodeID) {
	for _, c := range a.children[id] {
		a.reorderOr(c)
	}
	if a.labels[id] != OpAlternation {
		return
	}
	kids := append([]NodeID(nil), a.children[id]...)
	sort.Slice(kids, func(i, j int) bool {
		return a.ToPrefixString(kids[i]) < a.ToPrefixString(kids[j])
	})
	a.SetChildren(id, kids)
}

// removeUnaryNAries splices out any n-ary node left with exactly one child
// after flattening, replacing it in its parent by that single child.
func (a *Ast) removeUnaryNAries() {
	rc, ok := a.rootChild()
	if !ok {
		return
	}
	newChild := a.spliceSingleton(rc)
	a.SetChildren(a.root, []NodeID{newChild})
}

func (a *Ast) spliceSingleton(id NodeID) NodeID {
	kids := append([]NodeID(nil), a.children[id]...)
	newKids := make([]NodeID, len(kids))
	for i, c := range kids {
		newKids[i] = a.spliceSingleton(c)
	}
	a.SetChildren(id, newKids)
	lbl := a.labels[id]
	if IsNAry(lbl) && len(newKids) == 1 {
		only := newKids[0]
		a.RemoveNode(id)
		return only
	}
	return id
}
