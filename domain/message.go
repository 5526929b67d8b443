// Package domain contains core concepts of the chat backend.
// This file defines Message events and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"github.com/google/uuid"

	"batepapo/errors"
)

type MessageType string

const (
	TypeMessage MessageType = "message"
	TypePrivate MessageType = "private_message"
	TypeStatus  MessageType = "status"
)

// Broadcast is the reserved recipient meaning "everyone in the room".
// It is never a valid participant name.
const Broadcast = "Todos"

// Message represents an immutable chat event.
// ID and Time are assigned by the message log when the event is appended.
type Message struct {
	ID   uuid.UUID   `json:"id"`
	From string      `json:"from"`
	To   string      `json:"to"`
	Text string      `json:"text"`
	Type MessageType `json:"type"`
	Time string      `json:"time"`
}

func NewMessage(from, to, text string, kind MessageType) Message {
	return Message{From: from, To: to, Text: text, Type: kind}
}

// JoinedMessage is the system announcement appended when a participant registers.
func JoinedMessage(name string) Message {
	return NewMessage(name, Broadcast, "joined", TypeStatus)
}

// LeftMessage is the system announcement appended when a participant is evicted.
func LeftMessage(name string) Message {
	return NewMessage(name, Broadcast, "left", TypeStatus)
}

// Validate checks the fixed field set. Business rules (sender registration,
// reserved names) belong to the service layer, not here.
func (m Message) Validate() error {
	if m.From == "" || m.To == "" || m.Text == "" {
		return errors.ErrIncompleteMessage
	}
	switch m.Type {
	case TypeMessage, TypePrivate, TypeStatus:
		return nil
	default:
		return errors.ErrUnknownMessageType
	}
}

// VisibleTo reports whether the viewer may read this message.
// Broadcasts and status events are public; private messages are
// restricted to their sender and recipient.
func (m Message) VisibleTo(viewer string) bool {
	if m.Type != TypePrivate {
		return true
	}
	return m.From == viewer || m.To == viewer
}
