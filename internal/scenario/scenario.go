// Package scenario loads the small JSON documents that describe a demo or
// test run of cmd/icmsgloop: the ring geometry to bond with and a canned
// sequence of messages to send once bonded. cmd/icmsgloop's load command
// replays only the messages, over the channel it has already bonded with
// its own fixed geometry; buffer_len and align are parsed but not used
// there.
package scenario

import (
	"errors"

	"github.com/andreyvit/tinyjson"

	"github.com/jangala-dev/icmsg-go/x/strx"
)

// Scenario is one named end-to-end run, e.g. the suite's S3/S4/S6 scenarios
// expressed as data instead of Go test code.
type Scenario struct {
	Name     string   `json:"name"`
	BufLen   uint32   `json:"buffer_len"`
	Align    uint32   `json:"align"`
	Messages []string `json:"messages"`
}

// defaultAlign is used when a scenario document omits "align" — 4 is the
// minimum legal alignment and the right default for a host/host loopback
// pair with no cache-coherence granule to respect.
const defaultAlign = 4

// Parse decodes raw as a single scenario document. Unlike a full
// unmarshal, fields are read through tinyjson.Raw so a document with
// unrecognised extra keys — likely a newer scenario format — does not
// fail to load; it is simply ignored here.
func Parse(raw []byte) (*Scenario, error) {
	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return nil, errors.New("scenario: document is not a JSON object")
	}

	s := &Scenario{Align: defaultAlign}
	s.Name = strx.Coalesce(stringField(m, "name"), "unnamed")

	if v, ok := m["buffer_len"].(float64); ok {
		s.BufLen = uint32(v)
	}
	if v, ok := m["align"].(float64); ok && v != 0 {
		s.Align = uint32(v)
	}

	if raw, ok := m["messages"].([]any); ok {
		s.Messages = make([]string, 0, len(raw))
		for _, item := range raw {
			msg, ok := item.(string)
			if !ok {
				return nil, errors.New("scenario: messages must be strings")
			}
			s.Messages = append(s.Messages, msg)
		}
	}

	if s.BufLen == 0 {
		return nil, errors.New("scenario: buffer_len is required")
	}

	return s, nil
}

func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}
