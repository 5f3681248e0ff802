package dom

import "strconv"

// MutationOp is the type of recorded DOM mutation.
type MutationOp uint8

const (
	MutSetText    MutationOp = 0x01 // Text content changed
	MutSetAttr    MutationOp = 0x02 // Attribute set or updated
	MutRemoveAttr MutationOp = 0x03 // Attribute removed
	MutInsertNode MutationOp = 0x04 // Subtree inserted
	MutRemoveNode MutationOp = 0x05 // Subtree detached
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case MutSetText:
		return "SetText"
	case MutSetAttr:
		return "SetAttr"
	case MutRemoveAttr:
		return "RemoveAttr"
	case MutInsertNode:
		return "InsertNode"
	case MutRemoveNode:
		return "RemoveNode"
	default:
		return "Unknown"
	}
}

// Mutation is one recorded change to the document.
type Mutation struct {
	Op       MutationOp
	NodeID   string // Target node
	ParentID string // Parent, for InsertNode
	Index    int    // Position under parent, for InsertNode
	Key      string // Attribute key
	Value    string // New text or attribute value
	HTML     string // Serialized subtree, for InsertNode
}

// Document owns node identity for one live tree and records mutations.
type Document struct {
	root      *Node
	nextID    uint64
	recording bool
	mutations []Mutation
	byID      map[string]*Node
}

// NewDocument adopts root and all of its descendants.
func NewDocument(root *Node) *Document {
	d := &Document{byID: make(map[string]*Node)}
	d.root = root
	d.adopt(root)
	return d
}

// Root returns the document root.
func (d *Document) Root() *Node { return d.root }

// GetByID returns the adopted node with the given id, or nil.
func (d *Document) GetByID(id string) *Node { return d.byID[id] }

// Record enables mutation recording.
func (d *Document) Record() { d.recording = true }

// Pause disables mutation recording.
func (d *Document) Pause() { d.recording = false }

// TakeMutations returns the recorded mutations and clears the log.
func (d *Document) TakeMutations() []Mutation {
	muts := d.mutations
	d.mutations = nil
	return muts
}

// adopt assigns ids to a subtree and registers it with the document.
// Re-adopting an already-owned node keeps its id.
func (d *Document) adopt(n *Node) {
	if n == nil {
		return
	}
	if n.doc != d || n.id == "" {
		n.doc = d
		if n.id == "" {
			d.nextID++
			n.id = "f" + strconv.FormatUint(d.nextID, 10)
		}
		d.byID[n.id] = n
	}
	if n.Content != nil {
		d.adopt(n.Content)
	}
	for _, c := range n.children {
		d.adopt(c)
	}
}

// record appends a mutation when recording is on.
func (n *Node) record(m Mutation) {
	if n.doc == nil || !n.doc.recording || n.id == "" {
		return
	}
	n.doc.mutations = append(n.doc.mutations, m)
}

// recordInsert logs the attachment of child under n.
func (n *Node) recordInsert(child *Node) {
	if n.doc == nil || !n.doc.recording || n.id == "" {
		return
	}
	n.doc.mutations = append(n.doc.mutations, Mutation{
		Op:       MutInsertNode,
		NodeID:   child.id,
		ParentID: n.id,
		Index:    n.IndexOf(child),
		HTML:     RenderHTML(child),
	})
}
