package models

// Counter backs the human-facing ticketId/returnId sequences. One document
// per sequence name, bumped atomically with $inc.
type Counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
