package framepipe

import "errors"

const Namespace = "framepipe"

var (
	// ErrEndOfStream is returned by a Source to signal normal stream
	// termination. Once returned, the Source must not yield further items.
	ErrEndOfStream = errors.New(Namespace + ": end of stream")

	// ErrInvalidConfig reports an invalid pipeline configuration.
	// It is returned before any stage goroutine starts.
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")

	// ErrTransform wraps a per-frame transform failure. The failed frame is
	// still delivered in its sequence slot with this error attached.
	ErrTransform = errors.New(Namespace + ": transform failed")

	// ErrTransformPanicked wraps a panic recovered from the transform.
	ErrTransformPanicked = errors.New(Namespace + ": transform panicked")

	// ErrSource wraps an abnormal (non-end-of-stream) Source failure.
	// The pipeline drains and terminates, then Run returns this error.
	ErrSource = errors.New(Namespace + ": source failed")

	// ErrSinkAborted is returned by Run when a sink failure aborted the
	// pipeline under the abort-on-sink-error policy.
	ErrSinkAborted = errors.New(Namespace + ": pipeline aborted on sink error")
)
