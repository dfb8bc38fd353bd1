// Package routing provides an in-memory execution router: for every
// execution output pin in a blueprint it records, in declaration order, the
// nodes that run next.
package routing
