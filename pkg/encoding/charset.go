// Package encoding decodes text written by modelling tools in legacy character sets.
package encoding

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// charsets maps the accepted config names to decoders.
// "utf-8" is handled separately and never transforms.
var charsets = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"euc-kr":       korean.EUCKR,
	"shift-jis":    japanese.ShiftJIS,
	"gbk":          simplifiedchinese.GBK,
}

// Decoder converts raw bytes from one charset to UTF-8.
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder returns a decoder for the named charset. An empty name means UTF-8.
func NewDecoder(name string) (*Decoder, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "utf-8" || name == "utf8" {
		return &Decoder{name: "utf-8"}, nil
	}
	enc, ok := charsets[name]
	if !ok {
		return nil, fmt.Errorf("unknown charset %q", name)
	}
	return &Decoder{name: name, enc: enc}, nil
}

// Name returns the canonical charset name.
func (d *Decoder) Name() string {
	return d.name
}

// Bytes decodes data to a UTF-8 string.
// Valid UTF-8 input is returned unchanged whatever the charset, since exporters
// that claim a legacy charset often write UTF-8 anyway.
func (d *Decoder) Bytes(data []byte) string {
	data = bytes.TrimRight(data, "\x00")
	if d.enc == nil || utf8.Valid(data) {
		return string(data)
	}
	result, _, err := transform.Bytes(d.enc.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// String decodes s to UTF-8.
func (d *Decoder) String(s string) string {
	return d.Bytes([]byte(s))
}

// Supported lists the accepted charset names.
func Supported() []string {
	names := []string{"utf-8"}
	for name := range charsets {
		names = append(names, name)
	}
	return names
}
