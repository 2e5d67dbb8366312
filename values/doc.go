// Package values resolves declared values (static, interpolated, shell
// command, conditional) into concrete runtime values.
//
// Resolution failures never propagate to the caller: a failing or timed-out
// command, an unknown spec kind, or a malformed declaration resolves to nil
// and is reported on the debug channel, so one bad default cannot abort a
// run. Batch resolution runs every declaration concurrently; declarations
// in the same batch must not depend on each other — cross-references only
// see the already-resolved upstream context.
package values
