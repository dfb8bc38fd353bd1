// Package pinref parses the "node.pin" endpoint references used to wire
// connections in blueprint files.
package pinref
