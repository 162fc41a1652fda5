// Package wpcom implements the remote reader actions against the WordPress.com
// REST API.
package wpcom

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/logging"
)

// Options configures a Client.
type Options struct {
	BaseURL  string
	PixelURL string
	// Token is an OAuth2 bearer token; empty sends unauthenticated requests.
	Token   string
	Timeout time.Duration
	// HTTPClient overrides the transport. Token is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the REST API. Asynchronous methods run the request on a
// new goroutine and report through the callback exactly once.
type Client struct {
	baseURL  string
	pixelURL string
	http     *http.Client
}

// New returns a Client for opts.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		if opts.Token != "" {
			hc = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"}))
		} else {
			hc = &http.Client{}
		}
		hc.Timeout = opts.Timeout
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		pixelURL: opts.PixelURL,
		http:     hc,
	}
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("wpcom: HTTP %d", e.Status)
	}
	return fmt.Sprintf("wpcom: HTTP %d: %s: %s", e.Status, e.Code, e.Message)
}

// do sends a request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if gjson.ValidBytes(body) {
			apiErr.Code = gjson.GetBytes(body, "error").String()
			apiErr.Message = gjson.GetBytes(body, "message").String()
		}
		return nil, apiErr
	}
	return body, nil
}

// action posts to an endpoint answering {"success": bool}.
func (c *Client) action(ctx context.Context, path string) error {
	body, err := c.do(ctx, http.MethodPost, path)
	if err != nil {
		return err
	}
	if !gjson.GetBytes(body, "success").Bool() {
		return fmt.Errorf("wpcom: %s: success=false", path)
	}
	return nil
}

func (c *Client) async(ctx context.Context, op string, fn func() error, done model.RemoteDone) {
	go func() {
		start := time.Now()
		err := fn()
		logger := logging.FromContext(ctx)
		if err != nil {
			logger.Warn(ctx, "remote request failed", "op", op, "err", err, "elapsed", time.Since(start).Seconds())
		} else {
			logger.Debug(ctx, "remote request completed", "op", op, "elapsed", time.Since(start).Seconds())
		}
		done(err == nil)
	}()
}

// Like likes or unlikes a post.
func (c *Client) Like(ctx context.Context, post *model.Post, liked bool, userID int64, done model.RemoteDone) {
	verb := "likes/new"
	if !liked {
		verb = "likes/mine/delete"
	}
	path := fmt.Sprintf("/sites/%d/posts/%d/%s", post.BlogID, post.ID, verb)
	c.async(ctx, "like", func() error {
		logging.FromContext(ctx).Debug(ctx, "sending like", "blogId", post.BlogID, "postId", post.ID, "liked", liked, "userId", userID)
		return c.action(ctx, path)
	}, done)
}

// FetchContent downloads the post body.
func (c *Client) FetchContent(ctx context.Context, key model.PostKey, done func(content string, err error)) {
	path := fmt.Sprintf("/read/sites/%d/posts/%d", key.BlogID, key.PostID)
	go func() {
		body, err := c.do(ctx, http.MethodGet, path)
		if err != nil {
			done("", err)
			return
		}
		content := gjson.GetBytes(body, "content")
		if !content.Exists() {
			done("", fmt.Errorf("wpcom: %s: response has no content", path))
			return
		}
		done(content.String(), nil)
	}()
}

// BumpPageView records a page view through the stats pixel.
func (c *Client) BumpPageView(ctx context.Context, post *model.Post) error {
	if c.pixelURL == "" {
		return nil
	}
	q := url.Values{}
	q.Set("v", "wpcom")
	q.Set("blog", strconv.FormatInt(post.BlogID, 10))
	q.Set("post", strconv.FormatInt(post.ID, 10))
	q.Set("ref", "reader")
	q.Set("t", strconv.FormatInt(time.Now().UnixNano(), 36))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pixelURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}

// Block blocks a blog for the current user.
func (c *Client) Block(ctx context.Context, result *model.BlockedBlogResult, done model.RemoteDone) {
	path := fmt.Sprintf("/me/block/sites/%d/new", result.BlogID)
	c.async(ctx, "block", func() error { return c.action(ctx, path) }, done)
}

// Unblock removes a block.
func (c *Client) Unblock(ctx context.Context, blogID int64, done model.RemoteDone) {
	path := fmt.Sprintf("/me/block/sites/%d/delete", blogID)
	c.async(ctx, "unblock", func() error { return c.action(ctx, path) }, done)
}

var (
	_ model.PostActionPort = (*Client)(nil)
	_ model.BlogActionPort = (*Client)(nil)
)
