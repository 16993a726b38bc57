// Package content pulls the plaintext body out of a Gmail message payload.
//
// The search looks at most two levels below the root part:
//
//  1. the root body, whatever its MIME type;
//  2. the first text/plain child with data;
//  3. the first text/plain grandchild with data, children taken in order.
//
// When nothing is found the message snippet is used instead.
package content

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"google.golang.org/api/gmail/v1"

	"github.com/perarneng/flaggmail/pkg/interfaces"
)

const mimeTextPlain = "text/plain"

var (
	errNoPayload  = errors.New("message has no payload")
	errNilPart    = errors.New("message part is nil")
	errNoBody     = errors.New("text/plain part has no body")
	errInvalidUTF = errors.New("decoded body is not valid UTF-8")
)

type Extractor struct {
	logger interfaces.Logger
}

func NewExtractor(logger interfaces.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Text returns the plaintext of msg, or "" if nothing could be extracted.
// Decode and structure errors are logged against the message id and never
// returned.
func (e *Extractor) Text(msg *gmail.Message) string {
	if msg == nil {
		return ""
	}
	text, err := Extract(msg)
	if err != nil {
		e.logger.Error(fmt.Sprintf("Error processing message %s: %v", msg.Id, err))
		return ""
	}
	return text
}

// Extract is Text without the logging.
func Extract(msg *gmail.Message) (string, error) {
	root := msg.Payload
	if root == nil {
		return "", errNoPayload
	}

	if hasData(root) {
		return decode(root.Body.Data)
	}

	if len(root.Parts) > 0 {
		if text, ok, err := firstPlain(root.Parts); ok || err != nil {
			return text, err
		}
		for _, part := range root.Parts {
			if len(part.Parts) == 0 {
				continue
			}
			if text, ok, err := firstPlain(part.Parts); ok || err != nil {
				return text, err
			}
		}
	}

	return msg.Snippet, nil
}

// firstPlain decodes the first text/plain part in parts that carries data.
func firstPlain(parts []*gmail.MessagePart) (string, bool, error) {
	for _, part := range parts {
		if part == nil {
			return "", false, errNilPart
		}
		if part.MimeType != mimeTextPlain {
			continue
		}
		if part.Body == nil {
			return "", false, fmt.Errorf("part %q: %w", part.PartId, errNoBody)
		}
		if part.Body.Data == "" {
			continue
		}
		text, err := decode(part.Body.Data)
		return text, err == nil, err
	}
	return "", false, nil
}

func hasData(part *gmail.MessagePart) bool {
	return part.Body != nil && part.Body.Data != ""
}

// decode accepts both padded and unpadded URL-safe base64; the API has been
// seen returning either.
func decode(data string) (string, error) {
	enc := base64.URLEncoding
	if !strings.HasSuffix(data, "=") && len(data)%4 != 0 {
		enc = base64.RawURLEncoding
	}
	raw, err := enc.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("unable to decode body: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", errInvalidUTF
	}
	return string(raw), nil
}
