/*
Package report implements the crawler's diagnostic model (spec.md
§4.D): a tagged union of three report kinds — a visitor-produced
report, a resolver failure, and a recovered worker panic — each
exposing severity, a human summary, advisory tips (including an
auto-generated reproducer command via pkg/reproduce), and a truncated
view of any captured resolver output.

Grounded on kodi_recurse/src/report.rs (RecurseReport) and
kodi_recurse/src/report_builder.rs (ReportBuilder), translated from an
enum-of-variants into a Kind discriminator over a single struct, the
idiomatic Go shape for a small closed tagged union.
*/
package report
