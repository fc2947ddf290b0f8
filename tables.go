package tskit

// NodeID identifies a row of the node table.
type NodeID int32

// NullNode marks the absence of a node, e.g. the parent of a root.
const NullNode NodeID = -1

// NodeIsSample is the node flag that marks sample nodes.
const NodeIsSample uint32 = 1

type Node struct {
	Flags uint32
	Time  float64
}

// IsSample reports whether the node carries the sample flag.
func (n Node) IsSample() bool {
	return n.Flags&NodeIsSample != 0
}

// Edge records that Child inherits from Parent over [Left, Right).
type Edge struct {
	Left   float64
	Right  float64
	Parent NodeID
	Child  NodeID
}

type SiteRow struct {
	Position       float64
	AncestralState Allele
}

type MutationRow struct {
	Site         int32
	Node         NodeID
	DerivedState Allele
}

// Provenance records a step that produced or modified the tables.
type Provenance struct {
	Timestamp Time
	Record    string
}

// TableCollection is the mutable, columnar form of a tree sequence. It is
// validated and frozen by NewTreeSequence.
type TableCollection struct {
	SequenceLength float64
	Nodes          []Node
	Edges          []Edge
	Sites          []SiteRow
	Mutations      []MutationRow
	Provenances    []Provenance
}

func NewTableCollection(sequenceLength float64) *TableCollection {
	return &TableCollection{SequenceLength: sequenceLength}
}

// AddNode appends a node and returns its id.
func (tc *TableCollection) AddNode(flags uint32, time float64) NodeID {
	tc.Nodes = append(tc.Nodes, Node{Flags: flags, Time: time})
	return NodeID(len(tc.Nodes) - 1)
}

func (tc *TableCollection) AddEdge(left, right float64, parent, child NodeID) int {
	tc.Edges = append(tc.Edges, Edge{Left: left, Right: right, Parent: parent, Child: child})
	return len(tc.Edges) - 1
}

// AddSite appends a site and returns its index.
func (tc *TableCollection) AddSite(position float64, ancestralState string) int32 {
	tc.Sites = append(tc.Sites, SiteRow{Position: position, AncestralState: Allele(ancestralState)})
	return int32(len(tc.Sites) - 1)
}

// AddMutation appends a mutation. Mutations at one site are applied in the
// order they are added.
func (tc *TableCollection) AddMutation(site int32, node NodeID, derivedState string) int32 {
	tc.Mutations = append(tc.Mutations, MutationRow{Site: site, Node: node, DerivedState: Allele(derivedState)})
	return int32(len(tc.Mutations) - 1)
}

func (tc *TableCollection) AddProvenance(timestamp Time, record string) {
	tc.Provenances = append(tc.Provenances, Provenance{Timestamp: timestamp, Record: record})
}
