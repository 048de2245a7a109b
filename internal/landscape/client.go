// Package landscape is the client for the Landscape systems-management
// REST API. Every call is a signed form POST against a single endpoint;
// the server decides everything else.
package landscape

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/opskit/landscapectl/internal/models"
	"github.com/opskit/landscapectl/internal/signature"
)

// ErrScriptNotFound reports that no script title matched the requested
// prefix. Every title-resolving operation returns it, so callers can
// branch with errors.Is.
var ErrScriptNotFound = errors.New("script not found")

type Client struct {
	endpoint   string
	accessKey  string
	secret     string
	httpClient *http.Client
	now        func() time.Time
}

func New(endpoint, accessKey, secret string) *Client {
	return &Client{
		endpoint:  endpoint,
		accessKey: accessKey,
		secret:    secret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

// Scripts fetches the full script inventory.
func (c *Client) Scripts() ([]models.Script, error) {
	var scripts []models.Script
	if err := c.call(signature.Params{"action": "GetScripts"}, &scripts); err != nil {
		return nil, err
	}
	return scripts, nil
}

// Script resolves a script by title prefix. The API has no get-by-id or
// get-by-name call, so this fetches the full list and returns the first
// entry whose title starts with name. Ambiguous prefixes resolve to
// whichever match the server lists first, which the server does not
// promise to keep stable across calls.
func (c *Client) Script(name string) (*models.Script, error) {
	scripts, err := c.Scripts()
	if err != nil {
		return nil, err
	}
	for i := range scripts {
		if strings.HasPrefix(scripts[i].Title, name) {
			return &scripts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrScriptNotFound, name)
}

// ExecuteScript runs the named script on every host matched by query
// and returns the resulting activity.
func (c *Client) ExecuteScript(name, query string) (*models.ScriptExecution, error) {
	script, err := c.Script(name)
	if err != nil {
		return nil, err
	}

	params := signature.Params{
		"action":    "ExecuteScript",
		"query":     query,
		"script_id": strconv.Itoa(script.ID),
	}

	var exec models.ScriptExecution
	if err := c.call(params, &exec); err != nil {
		return nil, err
	}
	return &exec, nil
}

// CreateAttachment uploads the file at path as an attachment of the
// named script and returns the server's confirmation body. The file is
// read before any network activity, so an unreadable path never costs a
// round-trip.
func (c *Client) CreateAttachment(name, path string) (string, error) {
	payload, err := AttachmentPayload(path)
	if err != nil {
		return "", err
	}

	script, err := c.Script(name)
	if err != nil {
		return "", err
	}

	params := signature.Params{
		"action":    "CreateScriptAttachment",
		"script_id": strconv.Itoa(script.ID),
		"file":      signature.Encode(payload),
	}
	return c.callRaw(params)
}

// RemoveAttachment deletes the named attachment from the named script
// and returns the server's confirmation body.
func (c *Client) RemoveAttachment(name, filename string) (string, error) {
	script, err := c.Script(name)
	if err != nil {
		return "", err
	}

	params := signature.Params{
		"action":    "RemoveScriptAttachment",
		"script_id": strconv.Itoa(script.ID),
		"filename":  filename,
	}
	return c.callRaw(params)
}

// Attachments lists the attachment filenames of the named script. The
// list comes from the resolved script record; no extra call is made.
func (c *Client) Attachments(name string) ([]string, error) {
	script, err := c.Script(name)
	if err != nil {
		return nil, err
	}
	return script.Attachments, nil
}

// Computers fetches the full host inventory.
func (c *Client) Computers() ([]models.Computer, error) {
	var computers []models.Computer
	if err := c.call(signature.Params{"action": "GetComputers"}, &computers); err != nil {
		return nil, err
	}
	return computers, nil
}

func (c *Client) call(params signature.Params, out interface{}) error {
	body, err := c.callRaw(params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) callRaw(params signature.Params) (string, error) {
	signed, err := signature.Sign(params, http.MethodPost, c.endpoint, c.accessKey, c.secret, c.now())
	if err != nil {
		return "", err
	}

	form := url.Values{}
	for k, v := range signed {
		form.Set(k, v)
	}

	resp, err := c.httpClient.Post(c.endpoint, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return string(body), nil
}
