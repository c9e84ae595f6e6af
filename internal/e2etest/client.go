package e2etest

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"io"
	"net/http"
	"net/http/cookiejar"
	neturl "net/url"
	"strings"
	"time"
)

const (
	readyTimeout  = time.Second
	readyInterval = 100 * time.Millisecond
)

// StatusError is returned when the server answers with anything but 200 OK.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code %d", e.Method, e.Path, e.Code)
}

// Client talks to a running instance. It keeps cookies, such as the language choice, between requests.
type Client struct {
	client *http.Client
	url    string
}

func NewClient(url string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		client: &http.Client{Jar: jar}, //nolint:exhaustruct // defaults are fine for tests.
		url:    url,
	}, nil
}

// WaitForReady polls urlPath until it answers 200 OK. It gives up after a second.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	ticker := time.NewTicker(readyInterval)
	defer ticker.Stop()
	for {
		resp, err := c.Get(ctx, urlPath)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for %s: %w", urlPath, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Get fetches urlPath. The caller closes the body.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, urlPath, nil)
}

// PostForm posts url encoded values without going through a form of a document. The caller closes the body.
func (c *Client) PostForm(ctx context.Context, urlPath string, values neturl.Values) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, urlPath, values)
}

// GetDoc fetches urlPath and parses the page.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, err
	}
	return parseDoc(resp)
}

// GetJSON fetches urlPath and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, urlPath string, v any) error {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err = expectOK(resp); err != nil {
		return err
	}
	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", urlPath, err)
	}
	return nil
}

// SubmitForm fills the form with action formActionURLPath the way a user would and returns the page the server
// redirects to. fields maps label text to value. Hidden inputs are submitted as they are.
func (c *Client) SubmitForm(
	ctx context.Context,
	doc *goquery.Document,
	formActionURLPath string,
	fields map[string]string,
) (*goquery.Document, error) {
	form, err := FindForm(doc, formActionURLPath)
	if err != nil {
		return nil, err
	}

	values := neturl.Values{}
	form.Find("input[type=hidden]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		value, _ := s.Attr("value")
		values.Add(name, value)
	})
	for label, value := range fields {
		control, err := FindControlForLabel(form, label)
		if err != nil {
			return nil, err
		}
		name, ok := control.Attr("name")
		if !ok {
			return nil, fmt.Errorf("control for label %q in form %s has no name", label, formActionURLPath)
		}
		values.Set(name, value)
	}

	resp, err := c.PostForm(ctx, formActionURLPath, values)
	if err != nil {
		return nil, err
	}
	return parseDoc(resp)
}

func (c *Client) do(ctx context.Context, method, urlPath string, form neturl.Values) (*http.Response, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, urlPath, err)
	}
	return resp, nil
}

func expectOK(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	return &StatusError{Method: resp.Request.Method, Path: resp.Request.URL.Path, Code: resp.StatusCode}
}

// parseDoc closes the body. The document keeps the URL of the final response so redirects can be asserted.
func parseDoc(resp *http.Response) (*goquery.Document, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := expectOK(resp); err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	doc.Url = resp.Request.URL
	return doc, nil
}
