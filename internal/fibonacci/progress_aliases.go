// Progress types live in internal/progress; these aliases let callers of the
// calculators use them without a second import.

package fibonacci

import "github.com/agbru/fibnum/internal/progress"

type (
	// ProgressUpdate is a type alias for progress.ProgressUpdate.
	ProgressUpdate = progress.ProgressUpdate

	// ProgressCallback is a type alias for progress.ProgressCallback.
	ProgressCallback = progress.ProgressCallback

	// ProgressObserver is a type alias for progress.ProgressObserver.
	ProgressObserver = progress.ProgressObserver

	// ProgressSubject is a type alias for progress.ProgressSubject.
	ProgressSubject = progress.ProgressSubject
)

var (
	// NewProgressSubject creates a new progress subject.
	NewProgressSubject = progress.NewProgressSubject

	// NewChannelObserver creates a new channel observer.
	NewChannelObserver = progress.NewChannelObserver
)
