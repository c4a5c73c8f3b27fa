package mdpo

import (
	"fmt"

	"github.com/chai2010/gettext-go/po"
)

// Catalog is an insertion-ordered mapping of source text (msgid) to target
// text (msgstr). Ordering makes resolution and serialization deterministic.
type Catalog struct {
	keys    []string
	entries map[string]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]string)}
}

// Set inserts or overwrites an entry. Overwriting keeps the entry's original
// position.
func (c *Catalog) Set(msgid, msgstr string) {
	if _, ok := c.entries[msgid]; !ok {
		c.keys = append(c.keys, msgid)
	}
	c.entries[msgid] = msgstr
}

// Get returns the target text for msgid.
func (c *Catalog) Get(msgid string) (string, bool) {
	msgstr, ok := c.entries[msgid]
	return msgstr, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Each calls fn for every entry in insertion order.
func (c *Catalog) Each(fn func(msgid, msgstr string)) {
	for _, msgid := range c.keys {
		fn(msgid, c.entries[msgid])
	}
}

// Merge copies every entry of other into c, overwriting matching keys.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	other.Each(c.Set)
}

// LoadCatalog parses a gettext PO file. The header entry (empty msgid) is
// dropped; it is regenerated on save.
func LoadCatalog(data []byte) (*Catalog, error) {
	file, err := po.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse po: %w", err)
	}
	c := NewCatalog()
	for _, msg := range file.Messages {
		if msg.MsgId == "" {
			continue
		}
		c.Set(msg.MsgId, msg.MsgStr)
	}
	return c, nil
}

// Data serializes the catalog as a gettext PO file in insertion order.
func (c *Catalog) Data() []byte {
	file := &po.File{}
	file.MimeHeader.ProjectIdVersion = "mdpo"
	file.MimeHeader.MimeVersion = "1.0"
	file.MimeHeader.ContentType = "text/plain; charset=UTF-8"
	file.MimeHeader.ContentTransferEncoding = "8bit"
	line := 0
	c.Each(func(msgid, msgstr string) {
		// File.Data sorts messages by comment position before anything
		// else; a monotonic StartLine pins insertion order and is never
		// serialized.
		line++
		file.Messages = append(file.Messages, po.Message{
			Comment: po.Comment{StartLine: line},
			MsgId:   msgid,
			MsgStr:  msgstr,
		})
	})
	return file.Data()
}
