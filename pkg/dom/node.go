package dom

import "strings"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <div>, <span>, etc.
	KindText                 // Plain text node
	KindComment              // Comment node (viewport anchors)
	KindFragment             // Grouping without wrapper (template content)
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Node is a mutable DOM node.
type Node struct {
	Kind Kind   // Node type
	Tag  string // Element tag name (e.g., "div")

	// Content is the inert template fragment of a <template> element.
	// Nodes inside it are not part of the live tree until cloned out.
	Content *Node

	id        string
	text      string
	attrs     map[string]string
	classes   []string
	parent    *Node
	children  []*Node
	listeners map[string][]Listener
	doc       *Document
}

// NewElement creates a detached element node.
func NewElement(tag string) *Node {
	return &Node{Kind: KindElement, Tag: tag}
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, text: text}
}

// NewComment creates a detached comment node.
func NewComment(text string) *Node {
	return &Node{Kind: KindComment, text: text}
}

// NewFragment creates a detached fragment node.
func NewFragment(children ...*Node) *Node {
	f := &Node{Kind: KindFragment}
	for _, c := range children {
		f.AppendChild(c)
	}
	return f
}

// NewTemplate creates a <template> element whose children live in an inert
// content fragment.
func NewTemplate(content ...*Node) *Node {
	t := NewElement("template")
	t.Content = NewFragment(content...)
	return t
}

// IsTemplate reports whether the node is a template element.
func (n *Node) IsTemplate() bool {
	return n.Kind == KindElement && n.Tag == "template"
}

// ID returns the node's document-assigned identifier, or "" if the node has
// not been adopted by a Document.
func (n *Node) ID() string { return n.id }

// Parent returns the parent node, or nil for a detached or root node.
func (n *Node) Parent() *Node { return n.parent }

// ChildNodes returns the node's children. The returned slice is shared;
// callers must not mutate it.
func (n *Node) ChildNodes() []*Node { return n.children }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// NextSibling returns the following sibling, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	sibs := n.parent.children
	for i, c := range sibs {
		if c == n && i+1 < len(sibs) {
			return sibs[i+1]
		}
	}
	return nil
}

// Text returns the node's text content (text and comment nodes).
func (n *Node) Text() string { return n.text }

// SetText replaces the node's text content.
func (n *Node) SetText(text string) {
	if n.text == text {
		return
	}
	n.text = text
	n.record(Mutation{Op: MutSetText, NodeID: n.id, Value: text})
}

// Attr returns the attribute value and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// SetAttr sets an attribute.
func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	if old, ok := n.attrs[key]; ok && old == value {
		return
	}
	n.attrs[key] = value
	n.record(Mutation{Op: MutSetAttr, NodeID: n.id, Key: key, Value: value})
}

// RemoveAttr removes an attribute.
func (n *Node) RemoveAttr(key string) {
	if _, ok := n.attrs[key]; !ok {
		return
	}
	delete(n.attrs, key)
	n.record(Mutation{Op: MutRemoveAttr, NodeID: n.id, Key: key})
}

// HasClass reports whether the class list contains name.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.classes {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends a class if not already present.
func (n *Node) AddClass(name string) {
	if n.HasClass(name) {
		return
	}
	n.classes = append(n.classes, name)
	n.record(Mutation{Op: MutSetAttr, NodeID: n.id, Key: "class", Value: n.ClassAttr()})
}

// RemoveClass removes a class if present.
func (n *Node) RemoveClass(name string) {
	for i, c := range n.classes {
		if c == name {
			n.classes = append(n.classes[:i], n.classes[i+1:]...)
			n.record(Mutation{Op: MutSetAttr, NodeID: n.id, Key: "class", Value: n.ClassAttr()})
			return
		}
	}
}

// ClassAttr returns the class list as a space-joined attribute value.
func (n *Node) ClassAttr() string {
	return strings.Join(n.classes, " ")
}

// AppendChild detaches child from its current parent and appends it.
func (n *Node) AppendChild(child *Node) {
	child.Remove()
	child.parent = n
	n.children = append(n.children, child)
	n.adoptInto(child)
	n.recordInsert(child)
}

// InsertBefore inserts child immediately before ref, which must be a child of
// n. A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) {
	if ref == nil {
		n.AppendChild(child)
		return
	}
	child.Remove()
	for i, c := range n.children {
		if c == ref {
			child.parent = n
			n.children = append(n.children[:i], append([]*Node{child}, n.children[i:]...)...)
			n.adoptInto(child)
			n.recordInsert(child)
			return
		}
	}
	n.AppendChild(child)
}

// InsertAfter inserts child immediately after ref, which must be a child of n.
func (n *Node) InsertAfter(child, ref *Node) {
	if ref == nil {
		n.InsertBefore(child, n.FirstChild())
		return
	}
	n.InsertBefore(child, ref.NextSibling())
}

// Remove detaches the node from its parent. Detaching is recorded; the node
// keeps its identity and may be re-inserted later.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
	n.record(Mutation{Op: MutRemoveNode, NodeID: n.id})
}

// IndexOf returns the index of child in n's child list, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the node. The copy is detached, belongs to no
// document, and carries no event listeners. Template content is cloned too.
func (n *Node) Clone() *Node {
	c := &Node{
		Kind: n.Kind,
		Tag:  n.Tag,
		text: n.text,
	}
	if n.attrs != nil {
		c.attrs = make(map[string]string, len(n.attrs))
		for k, v := range n.attrs {
			c.attrs[k] = v
		}
	}
	if n.classes != nil {
		c.classes = append([]string(nil), n.classes...)
	}
	if n.Content != nil {
		c.Content = n.Content.Clone()
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// QueryAllByClass returns all descendant elements carrying the class, in
// document order. The node itself is never included.
func (n *Node) QueryAllByClass(name string) []*Node {
	var out []*Node
	for _, child := range n.children {
		child.collectByClass(name, &out)
	}
	return out
}

func (n *Node) collectByClass(name string, out *[]*Node) {
	if n.Kind == KindElement && n.HasClass(name) {
		*out = append(*out, n)
	}
	for _, child := range n.children {
		child.collectByClass(name, out)
	}
}

// QueryAllByTag returns all descendant elements with the given tag, in
// document order. The node itself is never included.
func (n *Node) QueryAllByTag(tag string) []*Node {
	var out []*Node
	n.collectByTag(tag, &out)
	return out
}

func (n *Node) collectByTag(tag string, out *[]*Node) {
	for _, child := range n.children {
		if child.Kind == KindElement && child.Tag == tag {
			*out = append(*out, child)
		}
		child.collectByTag(tag, out)
	}
}

// adoptInto propagates document ownership from n to a newly attached subtree.
func (n *Node) adoptInto(child *Node) {
	if n.doc != nil {
		n.doc.adopt(child)
	}
}
