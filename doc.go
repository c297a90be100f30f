// Package framepipe runs a sequential stream of numbered frames through a
// CPU-bound transform on N parallel workers while delivering the transformed
// frames to a single downstream sink in their original order.
//
// The pipeline has three stages connected by two thread-safe structures:
//
//   - an ingest stage pulls payloads from a Source, tags them with
//     contiguous sequence numbers, and pushes them onto a FIFO input queue;
//   - N workers pop frames, apply the transform, and insert the results into
//     a reorder buffer keyed by sequence number;
//   - a delivery stage extracts frames from the reorder buffer strictly in
//     sequence order and hands them to the Sink, one at a time.
//
// Workers finish out of order; the reorder buffer plus a strict
// "take only the expected sequence number" rule restores determinism
// without a barrier after every frame.
//
// Shutdown is marker-based: when the Source reports end of stream, the
// ingest stage fans out one end marker per worker. Each worker forwards its
// marker downstream and exits; the delivery stage stops at the first marker
// it extracts. The pipeline always terminates once end of stream is
// observed, regardless of per-frame transform failures: a failed frame is
// still delivered in its sequence slot with the error attached.
//
// Synchronization strategy is configurable: StrategyBlocking (the default)
// parks idle consumers on condition variables; StrategyPolling retries
// non-blocking reads with exponential backoff. Both provide identical
// ordering and termination guarantees.
//
// Minimal usage:
//
//	summary, err := framepipe.Run(ctx, source, transform, sink,
//	    framepipe.WithWorkers(4),
//	)
package framepipe
