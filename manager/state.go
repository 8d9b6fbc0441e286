package manager

// Status is the phase of the current lookup.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	MsgAwaiting       = "awaiting user input"
	MsgResolving      = "resolving coordinates"
	MsgTracking       = "tracking position"
	MsgDownloading    = "downloading satellite data"
	MsgNotFound       = "location not found"
	MsgCommunication  = "communication error"
	MsgIncomplete     = "incomplete data"
	MsgConnection     = "connection error, try again"
	MsgGPSErrorPrefix = "GPS error: "
)

// State is the single value the view is rendered from. Snapshot is nil
// unless Status is Ready.
type State struct {
	Status   Status    `json:"status"`
	Message  string    `json:"message"`
	Snapshot *Snapshot `json:"snapshot"`
	Seq      uint64    `json:"seq"`
}

// InitialState is the state before any user action.
func InitialState() State {
	return State{Status: Idle, Message: MsgAwaiting}
}

// Busy reports whether a lookup is in progress.
func (s State) Busy() bool {
	return s.Status == Loading
}

func (s State) loading(msg string) State {
	s.Status = Loading
	s.Message = msg
	s.Snapshot = nil
	return s
}

func (s State) failed(msg string) State {
	s.Status = Error
	s.Message = msg
	s.Snapshot = nil
	return s
}

func (s State) ready(snap Snapshot) State {
	s.Status = Ready
	s.Message = ""
	s.Snapshot = &snap
	return s
}
