package client

// AlertKind selects how a transient alert is presented.
type AlertKind string

const (
	AlertInfo           AlertKind = "info"
	AlertSuccess        AlertKind = "success"
	AlertError          AlertKind = "error"
	AlertSessionExpired AlertKind = "session_expired"
)

// Alerter shows a transient message (a toast in a UI, a log line in a terminal).
type Alerter interface {
	Alert(kind AlertKind, message string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(kind AlertKind, message string)

func (f AlerterFunc) Alert(kind AlertKind, message string) { f(kind, message) }
