package models

// Action is one item received from the DMS deploy websocket. The message
// field may be free text, a structured object, or absent.
type Action struct {
	Action  string      `json:"action"`
	Message interface{} `json:"message,omitempty"`
	Stdout  *string     `json:"stdout,omitempty"`
}

// Payload returns stdout when present, otherwise the message.
func (a Action) Payload() interface{} {
	if a.Stdout != nil {
		return *a.Stdout
	}
	return a.Message
}

// StatusEvent is one element of the job status stream delivered to the
// consumer.
type StatusEvent struct {
	Kind    string
	Payload interface{}
}
