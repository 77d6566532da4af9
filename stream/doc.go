// Package stream defines the contracts between a record scheduler and a
// record sink, plus a Runner that drives one into the other.
//
// Records are opaque fixed-size byte cells. A Source hands out batches
// as contiguous byte slices; a Sink consumes whole records from the
// front of a batch and reports how many it accepted. A sink under
// backpressure accepts fewer records than offered (possibly zero)
// without blocking; the Runner re-offers the unconsumed tail on the
// next turn, preserving record order.
//
//	src := stream.NewSliceSource(data, 4, 256)
//	err := stream.NewRunner(src, sink).Run(ctx)
package stream
