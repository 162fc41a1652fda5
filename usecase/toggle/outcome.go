package toggle

import "github.com/yaegashi/readerops/domain/model"

// Kind tags an Outcome.
type Kind int

const (
	// NoNetwork: connectivity preflight failed, nothing attempted.
	NoNetwork Kind = iota + 1
	// AlreadyRunning: another invocation holds the in-flight guard.
	AlreadyRunning
	// LocalStateRecorded: the optimistic local write happened; Snapshot is set.
	LocalStateRecorded
	// Unchanged: local state already matched the request.
	Unchanged
	// Success: the remote call reported success.
	Success
	// RequestFailed: the remote call reported failure or the wait was abandoned.
	RequestFailed
	// LocalWriteFailed: the local store could not be read or written; Err is set.
	LocalWriteFailed
	// PreloadContent: post content is about to be fetched for offline reading.
	PreloadContent
)

func (k Kind) String() string {
	switch k {
	case NoNetwork:
		return "NoNetwork"
	case AlreadyRunning:
		return "AlreadyRunning"
	case LocalStateRecorded:
		return "LocalStateRecorded"
	case Unchanged:
		return "Unchanged"
	case Success:
		return "Success"
	case RequestFailed:
		return "RequestFailed"
	case LocalWriteFailed:
		return "LocalWriteFailed"
	case PreloadContent:
		return "PreloadContent"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Failed reports terminal kinds that leave the request unfulfilled.
func (k Kind) Failed() bool {
	switch k {
	case NoNetwork, AlreadyRunning, RequestFailed, LocalWriteFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further outcomes follow this kind.
func (k Kind) Terminal() bool {
	switch k {
	case LocalStateRecorded, PreloadContent:
		return false
	default:
		return true
	}
}

// Outcome is one element of the sequence produced by Coordinator.Execute.
type Outcome[S any] struct {
	Kind     Kind
	Snapshot S             // LocalStateRecorded
	Post     model.PostKey // PreloadContent
	Err      error         // LocalWriteFailed, RequestFailed when the wait was cancelled
}

func (o Outcome[S]) String() string {
	if o.Err != nil {
		return o.Kind.String() + ": " + o.Err.Error()
	}
	return o.Kind.String()
}

// Kinds extracts the kinds of a collected sequence.
func Kinds[S any](outs []Outcome[S]) []Kind {
	ks := make([]Kind, 0, len(outs))
	for _, o := range outs {
		ks = append(ks, o.Kind)
	}
	return ks
}
