// Package blueprint defines the data model shared by every stage of the
// compiler: the node-and-pin graph authored in the editor, the metadata that
// describes each node type, the data sources bound to input pins, and the
// error taxonomy reported when a graph cannot be compiled.
//
// A Graph is owned by its caller. The compiler only ever borrows it
// read-only; anything that needs to change a graph (for example a sub-graph
// expansion pass) works on a Clone.
package blueprint
