package model

// InboundMessage is a chat message accepted by the webhook filter and handed
// to the relay pipeline. ThreadTS is the thread to reply in: for top-level
// messages it equals Timestamp.
type InboundMessage struct {
	User      string
	Channel   string
	Timestamp string
	ThreadTS  string
	Text      string
}
