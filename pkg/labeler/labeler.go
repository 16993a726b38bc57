package labeler

import (
	"context"
	"fmt"

	"github.com/perarneng/flaggmail/pkg/interfaces"
)

// Labeler attaches labels to messages by name, creating a label the first
// time it is needed. Label ids are remembered for the lifetime of the
// Labeler. It is not safe for concurrent use.
type Labeler struct {
	client interfaces.LabelClient
	logger interfaces.Logger
	ids    map[string]string
}

func New(client interfaces.LabelClient, logger interfaces.Logger) *Labeler {
	return &Labeler{
		client: client,
		logger: logger,
		ids:    make(map[string]string),
	}
}

// Apply attaches the label called name to the message.
func (l *Labeler) Apply(ctx context.Context, messageID, name string) error {
	labelID, err := l.resolve(ctx, name)
	if err != nil {
		return err
	}

	if err := l.client.AddLabels(ctx, messageID, labelID); err != nil {
		return fmt.Errorf("unable to label message %s: %w", messageID, err)
	}
	return nil
}

// resolve returns the id of the label called name, creating it if no label
// has that exact name.
func (l *Labeler) resolve(ctx context.Context, name string) (string, error) {
	if id, ok := l.ids[name]; ok {
		return id, nil
	}

	labels, err := l.client.ListLabels(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to list labels: %w", err)
	}

	for _, label := range labels {
		if label != nil && label.Name == name {
			l.logger.Debug(fmt.Sprintf("Found label %q (ID: %s)", name, label.Id))
			l.ids[name] = label.Id
			return label.Id, nil
		}
	}

	created, err := l.client.CreateLabel(ctx, name)
	if err != nil {
		return "", fmt.Errorf("unable to create label %q: %w", name, err)
	}
	l.logger.Info(fmt.Sprintf("Created label %q (ID: %s)", name, created.Id))
	l.ids[name] = created.Id
	return created.Id, nil
}
