package secondary

import (
	"context"
	"encoding/json"
)

// Message types and payload type tags on the sync channel.
const (
	MessageTypeDataUpdate = "data-update"

	PayloadTypeApplicants = "applicants"
	PayloadTypeTemplates  = "templates"
	PayloadTypeStageInfo  = "stage-info"
)

// Payload carries one changed logical value across instances.
type Payload struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds at send time
}

// Message is the envelope published on the sync channel.
type Message struct {
	Type    string  `json:"type"`
	Payload Payload `json:"payload"`
}

// Bus broadcasts data-change messages to sibling casetrack instances.
// Delivery is at-most-once, ordered per sender only, with no acknowledgement.
type Bus interface {
	// Publish sends msg to all other subscribed instances, fire-and-forget.
	Publish(ctx context.Context, msg Message) error

	// Subscribe registers handler for messages from other instances and
	// returns an unsubscribe function. The handler runs on the bus's own
	// goroutine until unsubscribe or ctx cancellation.
	Subscribe(ctx context.Context, handler func(Message)) (func(), error)

	// Close tears down the bus connection.
	Close() error
}
