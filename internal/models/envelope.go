package models

// EventAttributes is the flat attribute set produced for one customer event.
type EventAttributes map[string]any

// Action is one named event inside an envelope.
type Action struct {
	Action     string          `json:"action"`
	Attributes EventAttributes `json:"attributes"`
}

// Envelope is the JSON body submitted to the messaging platform for one
// customer event. Type is always "event".
type Envelope struct {
	Type       string   `json:"type"`
	CustomerID string   `json:"customer_id"`
	Actions    []Action `json:"actions"`
}

// NewEnvelope builds the single-action envelope the event endpoint expects.
func NewEnvelope(customerID, event string, attrs EventAttributes) Envelope {
	return Envelope{
		Type:       "event",
		CustomerID: customerID,
		Actions:    []Action{{Action: event, Attributes: attrs}},
	}
}
