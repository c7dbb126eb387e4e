// Package editor implements nav.Source against a running Neovim server,
// shelling out to the nvim binary's --remote-expr interface. Responses are
// requested as json_encode(...) output so parsing stays plain JSON.
package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"navtrail/internal/nav"
)

const defaultBinary = "nvim"

// Expressions evaluated remotely. The stack expression flattens gettagstack
// items into tag, absolute file path, and origin line in a single round
// trip; the context expression is the cheap trigger signal.
const (
	stackExpr = `json_encode({'curidx': gettagstack(win_getid())['curidx'], 'items': map(copy(gettagstack(win_getid())['items']), {_, v -> {'tag': v['tagname'], 'file': fnamemodify(bufname(v['bufnr']), ':p'), 'line': v['from'][1]}})})`

	contextExpr = `json_encode({'file': expand('%:p'), 'line': line('.'), 'tick': b:changedtick})`

	clearExpr = `json_encode(settagstack(win_getid(), {'items': []}))`
)

// ResolveServer determines the Neovim server address: the flag value wins,
// then $NVIM (set inside :terminal children), otherwise an error.
func ResolveServer(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := strings.TrimSpace(os.Getenv("NVIM")); env != "" {
		return env, nil
	}
	return "", errors.New("no Neovim server address: pass --server or run inside a :terminal with $NVIM set")
}

// Client talks to one Neovim server.
type Client struct {
	server string
	binary string
}

// NewClient returns a client for the given server address.
func NewClient(server string) *Client {
	return &Client{server: server, binary: defaultBinary}
}

// Stack implements nav.Source.
func (c *Client) Stack() (nav.Snapshot, error) {
	out, err := c.expr(stackExpr)
	if err != nil {
		return nav.Snapshot{}, fmt.Errorf("read tag stack: %w", err)
	}
	return parseStack(out)
}

// Context implements nav.Source.
func (c *Client) Context() (nav.Context, error) {
	out, err := c.expr(contextExpr)
	if err != nil {
		return nav.Context{}, fmt.Errorf("read editor context: %w", err)
	}
	return parseContext(out)
}

// ClearStack implements nav.Source.
func (c *Client) ClearStack() error {
	if _, err := c.expr(clearExpr); err != nil {
		return fmt.Errorf("clear tag stack: %w", err)
	}
	return nil
}

// Jump implements nav.Source: it repositions the editor at the given
// 0-based stack depth by issuing pop/tag commands relative to the live
// position.
func (c *Client) Jump(depth int) error {
	snap, err := c.Stack()
	if err != nil {
		return err
	}
	cur := snap.CurrentIndex - 1
	if cur < 0 {
		cur = 0
	}
	var cmd string
	switch {
	case depth < cur:
		cmd = fmt.Sprintf("%dpop", cur-depth)
	case depth > cur:
		cmd = fmt.Sprintf("%dtag", depth-cur)
	default:
		return nil
	}
	if _, err := c.expr(fmt.Sprintf(`json_encode(execute('silent! %s'))`, cmd)); err != nil {
		return fmt.Errorf("jump to depth %d: %w", depth, err)
	}
	return nil
}

func (c *Client) expr(expression string) ([]byte, error) {
	cmd := exec.Command(c.binary, "--server", c.server, "--remote-expr", expression)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("nvim --remote-expr: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("nvim --remote-expr: %w", err)
	}
	return bytes.TrimSpace(stdout.Bytes()), nil
}

type stackPayload struct {
	Curidx int           `json:"curidx"`
	Items  []itemPayload `json:"items"`
}

type itemPayload struct {
	Tag  string `json:"tag"`
	File string `json:"file"`
	Line int    `json:"line"`
}

type contextPayload struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Tick int    `json:"tick"`
}

func parseStack(data []byte) (nav.Snapshot, error) {
	var payload stackPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nav.Snapshot{}, fmt.Errorf("decode tag stack: %w", err)
	}
	snap := nav.Snapshot{CurrentIndex: payload.Curidx}
	for _, item := range payload.Items {
		snap.Items = append(snap.Items, nav.Event{
			Tag:    item.Tag,
			Origin: nav.Location{File: item.File, Line: item.Line},
		})
	}
	return snap, nil
}

func parseContext(data []byte) (nav.Context, error) {
	var payload contextPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nav.Context{}, fmt.Errorf("decode editor context: %w", err)
	}
	return nav.Context{File: payload.File, Line: payload.Line, Tick: payload.Tick}, nil
}
