// Package message defines the envelope exchanged over the local control
// socket between the shelfmark CLI and a running watcher.
//
// Each message is exactly one line of newline-delimited JSON: <json>\n.
// Requests carry only Type; responses carry the watcher's session state.
package message

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type identifies the kind of message.
type Type string

const (
	// TypeStatus asks the watcher for its session state.
	TypeStatus Type = "STATUS"

	// TypeStatusResponse answers STATUS and RESET with the current state.
	TypeStatusResponse Type = "STATUS_RESPONSE"

	// TypeReset zeroes the watcher's session counter. Answered with a
	// STATUS_RESPONSE reflecting the zeroed state.
	TypeReset Type = "RESET"

	// TypeError reports a request the watcher could not serve.
	TypeError Type = "ERROR"
)

// Message is the top-level wire envelope.
type Message struct {
	// Always present
	Type Type `json:"type"`

	// STATUS_RESPONSE: session state of the running watcher
	Source    string    `json:"source,omitempty"`
	Instance  string    `json:"instance,omitempty"`
	Backend   string    `json:"backend,omitempty"`
	StartedAt time.Time `json:"started_at,omitzero"`
	Count     int       `json:"count"`
	LastValue string    `json:"last_value,omitempty"`
	LastMatch time.Time `json:"last_match,omitzero"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}
