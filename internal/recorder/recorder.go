package recorder

// SessionRecord holds the audit row for one completed advisory session.
type SessionRecord struct {
	SessionID     string
	UserID        string
	Query         string
	RiskTolerance string
	TimeHorizon   string
	Outcome       string // "terminal", "exhausted" or "error"
	Rounds        int
	ToolCalls     int
	Advice        string
}

// Recorder persists session history for analysis.
type Recorder interface {
	RecordSession(rec *SessionRecord) error
	Close() error
}
