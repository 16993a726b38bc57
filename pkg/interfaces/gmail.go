package interfaces

import (
	"context"

	"google.golang.org/api/gmail/v1"
)

// LabelClient is the subset of the Gmail API needed to tag messages.
type LabelClient interface {
	ListLabels(ctx context.Context) ([]*gmail.Label, error)
	CreateLabel(ctx context.Context, name string) (*gmail.Label, error)
	AddLabels(ctx context.Context, messageID string, labelIDs ...string) error
}

type MessageSource interface {
	ListMessages(ctx context.Context, mailbox string, maxResults int64) ([]*gmail.Message, error)
	GetMessage(ctx context.Context, messageID string) (*gmail.Message, error)
}

type GmailClient interface {
	MessageSource
	LabelClient
	Connect(ctx context.Context) error
	Authorize(ctx context.Context, manual bool) error
}
