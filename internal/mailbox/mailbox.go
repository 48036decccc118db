// Package mailbox implements file-based message passing between agents.
// Each message is one file in the mailbox directory: a frontmatter metadata
// block over a free-text body. Files are the transport so that any agent
// (or a human with an editor) can participate without extra tooling.
package mailbox

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/loomhq/loom/internal/frontmatter"
)

// Message is one agent-to-agent message.
type Message struct {
	ID     string
	From   string
	To     string
	Bead   string
	Tags   []string
	SentAt time.Time
	Body   string
	Path   string
}

// Mailbox reads and writes messages in a single directory.
type Mailbox struct {
	dir string
}

// New creates a Mailbox rooted at dir, creating the directory if needed.
func New(dir string) (*Mailbox, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create mailbox directory: %w", err)
	}
	return &Mailbox{dir: dir}, nil
}

// Dir returns the mailbox directory.
func (mb *Mailbox) Dir() string {
	return mb.dir
}

// Send writes a message file and returns the stored message. The file name
// sorts by send time so List returns messages in order.
func (mb *Mailbox) Send(m Message) (*Message, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()[:8]
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	m.Path = filepath.Join(mb.dir, fmt.Sprintf("%d-%s.md", m.SentAt.UnixNano(), m.ID))

	meta := []frontmatter.Field{
		{Key: "id", Value: frontmatter.Scalar(m.ID)},
		{Key: "from", Value: frontmatter.Scalar(m.From)},
		{Key: "to", Value: frontmatter.Scalar(m.To)},
		{Key: "sent", Value: frontmatter.Scalar(m.SentAt.UTC().Format(time.RFC3339Nano))},
	}
	if m.Bead != "" {
		meta = append(meta, frontmatter.Field{Key: "bead", Value: frontmatter.Scalar(m.Bead)})
	} else {
		meta = append(meta, frontmatter.Field{Key: "bead", Value: frontmatter.Null()})
	}
	if len(m.Tags) > 0 {
		meta = append(meta, frontmatter.Field{Key: "tags", Value: frontmatter.List(m.Tags...)})
	}

	content := frontmatter.Render(meta, m.Body)
	if err := os.WriteFile(m.Path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("write message: %w", err)
	}
	return &m, nil
}

// Read parses one message file. Files without a metadata block still yield
// a message: the whole content becomes the body.
func (mb *Mailbox) Read(path string) (*Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message: %w", err)
	}
	m := decode(string(data))
	m.Path = path
	return m, nil
}

// List returns all messages in send order. When to is non-empty, only
// messages addressed to that recipient are returned.
func (mb *Mailbox) List(to string) ([]*Message, error) {
	entries, err := os.ReadDir(mb.dir)
	if err != nil {
		return nil, fmt.Errorf("read mailbox directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var messages []*Message
	for _, name := range names {
		m, err := mb.Read(filepath.Join(mb.dir, name))
		if err != nil {
			continue // unreadable file, not a protocol error
		}
		if to != "" && m.To != to {
			continue
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// decode maps a frontmatter envelope onto a Message.
func decode(content string) *Message {
	env := frontmatter.Parse(content)
	m := &Message{Body: env.Body}

	if v, ok := env.Get("id"); ok && v.Kind == frontmatter.KindScalar {
		m.ID = v.Str
	}
	if v, ok := env.Get("from"); ok && v.Kind == frontmatter.KindScalar {
		m.From = v.Str
	}
	if v, ok := env.Get("to"); ok && v.Kind == frontmatter.KindScalar {
		m.To = v.Str
	}
	if v, ok := env.Get("bead"); ok && v.Kind == frontmatter.KindScalar {
		m.Bead = v.Str
	}
	if v, ok := env.Get("tags"); ok {
		switch v.Kind {
		case frontmatter.KindList:
			m.Tags = v.Items
		case frontmatter.KindScalar:
			m.Tags = []string{v.Str}
		}
	}
	if v, ok := env.Get("sent"); ok && v.Kind == frontmatter.KindScalar {
		if t, err := time.Parse(time.RFC3339Nano, v.Str); err == nil {
			m.SentAt = t
		}
	}
	return m
}
