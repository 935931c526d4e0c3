package model

import "time"

// ImportedMessage is one reconstructed chat entry from an export archive.
// It exists only transiently between archive ingestion and parsing.
type ImportedMessage struct {
	ID         string            `json:"id"`
	Source     string            `json:"source"`
	Content    string            `json:"content"`
	ReceivedAt time.Time         `json:"received_at"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ImportBatch groups the messages produced by one archive ingestion.
type ImportBatch struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// StoredDeal is a persisted ParsedDeal with its storage envelope.
type StoredDeal struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Deal      ParsedDeal `json:"deal"`
	CreatedAt time.Time  `json:"created_at"`
}
