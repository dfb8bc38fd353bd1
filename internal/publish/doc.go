// Package publish pushes compiled programs to a live editor session over
// Socket.IO so an open editor can hot-reload them.
package publish
