package store

// Message is one indexed message body. ID is the message's position in the
// export; sender and time stay in the export sequence.
type Message struct {
	ID   int64
	Body string
}
