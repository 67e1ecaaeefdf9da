// Package crds implements the Cluster Replicated Data Store: the
// in-memory, thread-safe, indexed registry of signed gossip values
// exchanged between nodes in a gossip cluster.
//
// CrdsTable is the primary type. It holds one record per value label,
// maintains secondary indices by value category, insertion cursor, and
// hash-derived shard, and resolves conflicting updates to the same label
// with a deterministic overwrite rule. Network transport, pull-request
// construction, and signature verification are external collaborators —
// this package only stores, indexes, and resolves what it is given.
package crds
