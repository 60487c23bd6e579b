/*
Package invocation models one CLI invocation as data: a command name,
the declared order in which known options should be printed, a table
mapping a long option name to its short form, the argument values
themselves, a set of boolean (valueless) flags, and an optional nested
sub-command of the same shape.

It exists so pkg/reproduce can take the invocation that actually ran,
mutate a copy of it (drop a flag, force a value, swap which path is
being crawled), and render the result as a shell-safe command line —
without either package needing to know about cobra or os.Args.

Grounded on kodi_recurse/src/argument.rs's AppArgument.
*/
package invocation
