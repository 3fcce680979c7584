// Package slack implements the Messenger and Directory ports using the
// slack-go library.
package slack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	slackapi "github.com/slack-go/slack"

	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.Messenger = (*Client)(nil)
	_ driven.Directory = (*Client)(nil)
)

// defaultRetryAfter is used when Slack rate-limits a request without telling
// us how long to wait.
const defaultRetryAfter = 60 * time.Second

// Client implements the Messenger and Directory ports against the Slack Web API.
type Client struct {
	api        *slackapi.Client
	orgFieldID string // Custom profile field ID holding the member's organization.
}

// NewClient creates a Slack Web API client. orgFieldID identifies the custom
// profile field projected as "organization" in directory exports; it may be
// empty when the client is only used as a Messenger. Extra options are passed
// through to slack-go (tests inject httptest URLs this way).
func NewClient(token, orgFieldID string, opts ...slackapi.Option) *Client {
	return &Client{
		api:        slackapi.New(token, opts...),
		orgFieldID: orgFieldID,
	}
}

// BotUserID resolves the authenticated bot's own user ID via auth.test.
// The webhook filter uses it to ignore the bot's own messages.
func (c *Client) BotUserID(ctx context.Context) (string, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", fmt.Errorf("slack auth.test: %w", err)
	}
	return resp.UserID, nil
}

// PostThreadReply posts text into the given channel as a reply to the thread
// identified by threadTS.
func (c *Client) PostThreadReply(ctx context.Context, channel, threadTS, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channel,
		slackapi.MsgOptionText(text, false),
		slackapi.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("posting to %s (thread %s): %w", channel, threadTS, err)
	}

	slog.Debug("posted thread reply", "channel", channel, "thread_ts", threadTS)
	return nil
}

// FetchUsers returns every member of the workspace. A Slack rate-limit
// response is translated into *driven.RateLimitError so the export service
// can decide how to wait; the retry itself happens above this adapter.
func (c *Client) FetchUsers(ctx context.Context) ([]model.DirectoryUser, error) {
	members, err := c.api.GetUsersContext(ctx)
	if err != nil {
		var rle *slackapi.RateLimitedError
		if errors.As(err, &rle) {
			retryAfter := rle.RetryAfter
			if retryAfter <= 0 {
				retryAfter = defaultRetryAfter
			}
			return nil, &driven.RateLimitError{RetryAfter: retryAfter}
		}
		return nil, fmt.Errorf("slack users.list: %w", err)
	}

	users := make([]model.DirectoryUser, 0, len(members))
	for _, member := range members {
		users = append(users, model.DirectoryUser{
			Name:         member.RealName,
			Email:        member.Profile.Email,
			Organization: c.organizationOf(member),
			IsBot:        member.IsBot,
		})
	}

	return users, nil
}

// organizationOf reads the configured custom profile field from a member.
// A member without custom fields, or without this field, yields an empty
// string rather than an error.
func (c *Client) organizationOf(member slackapi.User) string {
	if c.orgFieldID == "" {
		return ""
	}

	fields := member.Profile.Fields.ToMap()
	if fields == nil {
		return ""
	}

	return fields[c.orgFieldID].Value
}
