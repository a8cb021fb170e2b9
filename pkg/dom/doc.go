// Package dom is the dialect-agnostic node model every front end produces.
//
// A Document owns two arenas, one for nodes and one for attributes. Nodes
// refer to each other by handle (NodeID, AttrID) and parents are plain back
// references, so the tree carries no pointer cycles. Callers work with the
// lightweight Node and Attr values, which pair a handle with its Document.
//
// Every node keeps the exact raw source slice it was built from along with
// its 1-based line and column. Serialize concatenates those slices in
// document order, which reproduces the input byte for byte until a fix
// mutates the tree; mutations rebuild the affected raw text and recompute
// positions from the mutated token onward.
package dom
