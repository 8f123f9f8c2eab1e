package ghrepo

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Outcome of a single file push.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
)

type contentsResponse struct {
	SHA string `json:"sha"`
}

type putContentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// Client talks to the GitHub contents API: read a file's blob SHA, then
// create or overwrite it. No diffing; pushing unchanged content is a normal
// update.
type Client struct {
	l           *slog.Logger
	restyClient *resty.Client
	apiURL      string
	owner       string
}

func NewClient(apiURL, owner, token string) *Client {
	client := resty.New()
	client.SetRetryCount(0)
	client.SetTimeout(15 * time.Second)
	client.SetHeader("Accept", "application/vnd.github+json")
	if token != "" {
		client.SetAuthToken(token)
	}
	return &Client{
		l:           slog.With(slog.String("component", "github-client")),
		restyClient: client,
		apiURL:      apiURL,
		owner:       owner,
	}
}

func (c *Client) log() *slog.Logger {
	if c.l != nil {
		return c.l
	}
	return slog.With(slog.String("component", "github-client"))
}

func (c *Client) contentsURL(repo, path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiURL, c.owner, repo, path)
}

// getFileSHA returns the blob SHA of an existing file, or "" when the path
// does not exist yet.
func (c *Client) getFileSHA(ctx context.Context, repo, path string) (string, error) {
	var body contentsResponse
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetResult(&body).
		Get(c.contentsURL(repo, path))
	if err != nil {
		return "", err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", nil
	}
	if resp.IsError() {
		return "", fmt.Errorf("get %s/%s: status %d", repo, path, resp.StatusCode())
	}
	return body.SHA, nil
}

// PushFile creates the file when missing, overwrites it otherwise.
func (c *Client) PushFile(ctx context.Context, repo, path, content, message string) (Outcome, error) {
	sha, err := c.getFileSHA(ctx, repo, path)
	if err != nil {
		return "", err
	}

	req := &putContentsRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
		SHA:     sha,
	}
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetBody(req).
		Put(c.contentsURL(repo, path))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("put %s/%s: status %d", repo, path, resp.StatusCode())
	}

	outcome := OutcomeCreated
	if sha != "" {
		outcome = OutcomeUpdated
	}
	c.log().Info("pushed repository file",
		slog.String("repo", repo),
		slog.String("path", path),
		slog.String("outcome", string(outcome)),
	)
	return outcome, nil
}
