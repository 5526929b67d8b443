// Package domain contains core concepts of the chat backend.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

// Participant is a registered chat user tracked for liveness.
// LastSeenAt is milliseconds since epoch, refreshed by every status ping.
type Participant struct {
	Name       string `json:"name"`
	LastSeenAt int64  `json:"lastSeenAt"`
}

func NewParticipant(name string, at time.Time) Participant {
	return Participant{Name: name, LastSeenAt: at.UnixMilli()}
}

// StaleAt reports whether the participant has been silent for longer
// than threshold as of now.
func (p Participant) StaleAt(now time.Time, threshold time.Duration) bool {
	return p.LastSeenAt < now.Add(-threshold).UnixMilli()
}
