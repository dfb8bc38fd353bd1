// Package registry is the compiler's metadata provider.
//
// The Registry maps the node-type strings used in blueprints (e.g. "print",
// "branch") to the metadata that tells the code generator how to emit them:
// the node kind, parameters, return type, imports and, for control-flow
// nodes, the source template.
//
// During startup the registry is populated from the built-in library and any
// user libraries, then validated so that every control-flow template and its
// declared parameters and exec outputs are in sync. This moves a class of
// code-generation failures to load time.
package registry
