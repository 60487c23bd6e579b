/*
Package model defines the data the resolver helper hands back for one
access descriptor: a Page (an interior node's children and optional
leaf) or a Prompt (only meaningful at the root, §3 of the crawler's
specification), plus the ListItem schema a leaf or a child sub-entry
carries.

These types mirror the JSON schema documented in the resolver helper
interface exactly; field names are dictated by that wire format and are
not renamed to more idiomatic Go, the same way the teacher's
pkg/types keeps on-wire field names verbatim.
*/
package model
