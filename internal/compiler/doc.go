// Package compiler is the entry point that turns a blueprint graph into
// Rust source. It runs the analysis passes (data flow, then execution
// routing) and hands their results to the code generator.
package compiler
