// Package dataflow analyses the data edges of a blueprint. For every input
// pin it records where the value comes from (another node's output, a
// literal, or the pin's zero value), and it assigns result variables to the
// nodes whose output must be stored before it can be used.
//
// Pure nodes are inlined by the code generator, so a cycle made only of pure
// nodes and variable getters can never be emitted. Build rejects such graphs
// up front and computes the order in which pure nodes can be evaluated.
package dataflow
