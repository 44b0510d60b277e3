// Package compiler implements the compiler-service boundary the pipeline
// drives: recognising definition files, parsing their declarations into a
// shared database keyed by source path, and emitting compiled per-locale
// artifacts in a selectable serialization format.
package compiler
