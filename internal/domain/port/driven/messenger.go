package driven

import "context"

// Messenger defines the driven port for posting replies back to the chat
// platform.
type Messenger interface {
	// PostThreadReply posts text into the given channel as a reply to the
	// thread identified by threadTS.
	PostThreadReply(ctx context.Context, channel, threadTS, text string) error
}
