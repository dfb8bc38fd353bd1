// Package dag is a small directed graph of string IDs used to reason about
// data dependencies between blueprint nodes: which pure expressions feed
// which, whether they form a cycle, and the order they can be evaluated in.
//
// Iteration is always over sorted IDs, so every result (including which
// cycle is reported first) is deterministic for a given graph.
package dag
