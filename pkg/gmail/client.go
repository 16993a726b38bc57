package gmail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/perarneng/flaggmail/pkg/config"
	"github.com/perarneng/flaggmail/pkg/interfaces"
)

// Scope lets the client read messages and change their labels.
const Scope = gmail.GmailModifyScope

var errNotConnected = errors.New("gmail service not connected")

var _ interfaces.GmailClient = (*Client)(nil)

type Client struct {
	service *gmail.Service
	userID  string

	credentialsFile string
	tokenFile       string

	logger  interfaces.Logger
	in      io.Reader
	out     io.Writer
	openURL func(string) error
}

func NewClient(cfg *config.Config, logger interfaces.Logger) *Client {
	return &Client{
		userID:          "me",
		credentialsFile: cfg.CredentialsFile,
		tokenFile:       cfg.TokenFile,
		logger:          logger,
		in:              os.Stdin,
		out:             os.Stdout,
		openURL:         openBrowser,
	}
}

func (c *Client) oauthConfig() (*oauth2.Config, error) {
	b, err := os.ReadFile(c.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(b, Scope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	return cfg, nil
}

// Connect builds the Gmail service from the cached token, running the
// interactive authorization flow first when no token is cached.
func (c *Client) Connect(ctx context.Context) error {
	cfg, err := c.oauthConfig()
	if err != nil {
		return err
	}

	tok, err := tokenFromFile(c.tokenFile)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("No cached token at %s, starting authorization", c.tokenFile))
		tok, err = c.tokenFromLoopback(ctx, cfg)
		if err != nil {
			return fmt.Errorf("unable to get token from web: %w", err)
		}
		if err := saveToken(c.tokenFile, tok); err != nil {
			return err
		}
		c.logger.Info(fmt.Sprintf("Saved credential file to: %s", c.tokenFile))
	}

	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
		},
	}

	// The token source uses httpClient for refreshes; refreshed tokens are
	// written back to the cache.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	ts := &cachingTokenSource{
		base:   oauth2.ReuseTokenSource(tok, cfg.TokenSource(ctx, tok)),
		path:   c.tokenFile,
		last:   tok.AccessToken,
		logger: c.logger,
	}

	return c.ConnectService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
}

// ConnectService builds the Gmail service from explicit client options.
func (c *Client) ConnectService(ctx context.Context, opts ...option.ClientOption) error {
	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("unable to retrieve Gmail client: %w", err)
	}
	c.service = srv
	return nil
}

// Authorize runs the interactive flow unconditionally and caches the result.
// With manual set the authorization code is pasted on stdin instead of being
// received by a local callback server.
func (c *Client) Authorize(ctx context.Context, manual bool) error {
	cfg, err := c.oauthConfig()
	if err != nil {
		return err
	}

	var tok *oauth2.Token
	if manual {
		tok, err = c.tokenFromPaste(ctx, cfg)
	} else {
		tok, err = c.tokenFromLoopback(ctx, cfg)
	}
	if err != nil {
		return err
	}

	if err := saveToken(c.tokenFile, tok); err != nil {
		return err
	}
	c.logger.Info(fmt.Sprintf("Authentication completed successfully! %s has been created.", c.tokenFile))
	return nil
}

func (c *Client) tokenFromPaste(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(c.out, "Go to the following link in your browser then type the authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Fscan(c.in, &authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := cfg.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func (c *Client) ListMessages(ctx context.Context, mailbox string, maxResults int64) ([]*gmail.Message, error) {
	if c.service == nil {
		return nil, errNotConnected
	}

	resp, err := c.service.Users.Messages.List(c.userID).
		LabelIds(mailbox).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve messages: %w", err)
	}
	return resp.Messages, nil
}

func (c *Client) GetMessage(ctx context.Context, messageID string) (*gmail.Message, error) {
	if c.service == nil {
		return nil, errNotConnected
	}

	msgCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := c.service.Users.Messages.Get(c.userID, messageID).Format("full").Context(msgCtx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve message %s: %w", messageID, err)
	}
	return msg, nil
}

func (c *Client) ListLabels(ctx context.Context) ([]*gmail.Label, error) {
	if c.service == nil {
		return nil, errNotConnected
	}

	resp, err := c.service.Users.Labels.List(c.userID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list labels: %w", err)
	}
	return resp.Labels, nil
}

// CreateLabel creates a user label that is shown in both the label list and
// the message list.
func (c *Client) CreateLabel(ctx context.Context, name string) (*gmail.Label, error) {
	if c.service == nil {
		return nil, errNotConnected
	}

	label := &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}
	created, err := c.service.Users.Labels.Create(c.userID, label).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create label %q: %w", name, err)
	}
	return created, nil
}

func (c *Client) AddLabels(ctx context.Context, messageID string, labelIDs ...string) error {
	if c.service == nil {
		return errNotConnected
	}

	req := &gmail.ModifyMessageRequest{AddLabelIds: labelIDs}
	if _, err := c.service.Users.Messages.Modify(c.userID, messageID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to modify message %s: %w", messageID, err)
	}
	return nil
}

// StatusCode returns the HTTP status of a Gmail API error, or 0 if err did
// not come from the API.
func StatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
