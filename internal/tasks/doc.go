// Package tasks implements the playlist refinement pipeline.
//
// The core abstraction is [RefineEngine], which orchestrates the full run:
// fetch the playlist snapshot, offer duration-close duplicates for automatic
// removal, walk the remaining duplicate groups interactively, then review
// tracks released after the cutoff year. Every committed removal batch
// invalidates the snapshot's positions, so the engine refetches before the
// next position-addressed step.
//
// User input arrives through the [Prompter] interface and is parsed into
// typed decisions by the dedupe package, keeping the decision logic testable
// without a console.
//
// Keep decisions accumulate in the repositories.KeepStore and are persisted
// once at the end of the run; a persistence failure is logged, never fatal.
package tasks
