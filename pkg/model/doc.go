// Package model defines the message data model shared by the formatting
// engine, the compiler pipeline, and the artifact loader. A Message is a
// tagged variant (Literal, Resolvable, Compiled) matched exhaustively by the
// engine; Template is the opaque compiled form a Resolvable ultimately
// resolves to. Parts are the structured projection of a formatted message:
// plain literal runs interleaved with rendered rich-element content. Values
// carry per-call placeholder bindings, where a binding may be a plain value or
// a RichRenderer producing styled content for a named rich element.
package model
