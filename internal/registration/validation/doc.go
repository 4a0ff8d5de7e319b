// Package validation decides whether a registration payload may be stored.
//
// Each field owns an ordered list of rules. Every rule runs, and all failures
// are kept in declaration order; nothing short-circuits. Email and CPF are also
// checked for uniqueness against the store. Those lookups start concurrently,
// the synchronous rules run while they are in flight, and one barrier joins
// them before the results are merged into a single Verdict.
//
// A failing lookup does not become a field message. It aborts the run with a
// *LookupError and no partial verdict is produced.
package validation
