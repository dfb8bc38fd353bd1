// Package codegen turns a blueprint graph into Rust source text.
//
// Every event node becomes a parameterless function. Its body is produced by
// walking execution edges from the event's exec outputs: function nodes
// become call statements, control-flow nodes inline their template with the
// code of each branch, and variable setters write to a thread-local storage
// cell. Pure nodes and variable getters never appear as statements; they are
// rebuilt as expressions wherever their value is consumed.
//
// The generator only reads its inputs. The graph, the node metadata, the data
// resolver and the execution router are supplied by the caller and must not
// change while Generate runs.
package codegen
