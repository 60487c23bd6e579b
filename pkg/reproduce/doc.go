/*
Package reproduce builds a shell-safe command line that reproduces one
failing node, per spec.md §4.F. Given the invocation.Invocation that
actually ran and the failing (child, optional parent) access.Descriptor
pair, Build clones the invocation and mutates it: drops "keep-going",
forces single-threaded output capture off, sets jobs=1, and points
"path"/"parent-path" at the failing node, then renders and shell-quotes
every token with github.com/kballard/go-shellquote — the same library
the teacher's dependency graph already carries transitively (via lima),
now promoted to direct use for exactly the job the Rust original's
shell-escape crate did in kodi_recurse/src/argument.rs.
*/
package reproduce
