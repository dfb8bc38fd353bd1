// Package stdlib embeds the standard node library: the event, I/O, math,
// string and flow-control node types every blueprint can use without
// shipping its own manifests.
package stdlib
