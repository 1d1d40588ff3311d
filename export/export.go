// Package export contains subscribers that persist or forward published
// sweep recordings. All exporters implement sweep.Subscriber and are driven
// synchronously by the sequencer's per-step fan-out.
package export
