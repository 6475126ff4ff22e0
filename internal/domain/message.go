package domain

import "time"

// Message is a directed message between two users about one ride.
// The (sender, receiver, ride) triple and its mirror identify a thread.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	RideID     string
	Content    string
	SentAt     time.Time
	Read       bool
}

// Conversation summarizes a thread for the inbox listing: the counterpart,
// the ride context and the latest message exchanged.
type Conversation struct {
	OtherUser     Profile
	RideID        string
	University    string
	StartLocation string
	LastMessage   string
	Timestamp     time.Time
	Unread        bool
}
