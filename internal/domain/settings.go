package domain

import (
	"bytes"
	"encoding/json"
)

// Credential is one opaque cookie object supplied by the user. It is stored and
// persisted as received, minus insignificant whitespace; only Agent derivation
// looks inside it.
type Credential json.RawMessage

// MarshalJSON emits the credential bytes unchanged.
func (c Credential) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return c, nil
}

// UnmarshalJSON keeps a compacted copy of the raw credential bytes, so a value
// reads back identically after an indented write.
func (c *Credential) UnmarshalJSON(data []byte) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*c = append((*c)[:0], buf.Bytes()...)
	return nil
}

// Settings is the persisted user configuration.
type Settings struct {
	Cookies []Credential `json:"cookies"`
	Cache   bool         `json:"cache"`
}

// DefaultSettings is what a missing or unreadable settings file is replaced with.
func DefaultSettings() Settings {
	return Settings{Cookies: []Credential{}, Cache: true}
}

// Clone returns a deep copy so snapshots never share credential bytes.
func (s Settings) Clone() Settings {
	out := Settings{Cache: s.Cache, Cookies: make([]Credential, len(s.Cookies))}
	for i, c := range s.Cookies {
		out.Cookies[i] = append(Credential(nil), c...)
	}
	return out
}

// Equal reports whether two settings documents carry the same values.
func (s Settings) Equal(o Settings) bool {
	if s.Cache != o.Cache || len(s.Cookies) != len(o.Cookies) {
		return false
	}
	for i := range s.Cookies {
		if !bytes.Equal(s.Cookies[i], o.Cookies[i]) {
			return false
		}
	}
	return true
}
