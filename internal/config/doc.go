// Package config defines the format-agnostic configuration model for the
// compiler, along with the Loader interface for reading it from a concrete
// source.
//
// The `config.Model` is the single source of truth for the `registry` and
// `compiler` packages. Concrete implementations of the interface, such as
// the HCL one, are provided in separate packages.
package config
