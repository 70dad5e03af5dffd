package thriftmux

import (
	"errors"
	"mime"
	"strings"

	"github.com/apache/thrift/lib/go/thrift"
)

// Format names one Thrift wire protocol together with the media types a
// request's Content-Type must match to select it and the media type a
// reply is sent back under.
type Format struct {
	Name               string
	AcceptMediaTypes   []string
	ResponseMediaType  string
	Protocol           thrift.TProtocolFactory
}

// Accepts reports whether mediaType (already stripped of parameters)
// selects this format.
func (f Format) Accepts(mediaType string) bool {
	for _, m := range f.AcceptMediaTypes {
		if strings.EqualFold(m, mediaType) {
			return true
		}
	}
	return false
}

// FormatSet is the set of wire formats a Service will negotiate against,
// with one designated as the default used when a request carries no
// Content-Type at all.
type FormatSet struct {
	formats []Format
}

// NewFormatSet builds a FormatSet. def is used whenever a request omits
// Content-Type; duplicate names among others are dropped, keeping the
// first occurrence.
func NewFormatSet(def Format, others ...Format) (*FormatSet, error) {
	if def.Name == "" {
		return nil, errors.New("thriftmux: default format must have a name")
	}
	if def.Protocol == nil {
		return nil, errors.New("thriftmux: default format must carry a protocol factory")
	}

	set := []Format{def}
	seen := map[string]bool{def.Name: true}
	for _, f := range others {
		if f.Name == "" || f.Protocol == nil {
			return nil, errors.New("thriftmux: format must have a name and a protocol factory")
		}
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		set = append(set, f)
	}
	return &FormatSet{formats: set}, nil
}

// Default returns the format used for requests without a Content-Type.
func (s *FormatSet) Default() Format { return s.formats[0] }

// Allowed returns every format in the set, default first.
func (s *FormatSet) Allowed() []Format {
	out := make([]Format, len(s.formats))
	copy(out, s.formats)
	return out
}

// Pick chooses a format for contentType. An empty contentType picks the
// default. A content type of text/plain or application/octet-stream -
// the values an undiscriminating HTTP client sends when it has no
// opinion - also falls back to the default, matching how browsers and
// generic curl invocations post bodies. Anything else must name one of
// the set's accepted media types.
func (s *FormatSet) Pick(contentType string) (Format, bool) {
	if contentType == "" {
		return s.Default(), true
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.TrimSpace(contentType)
	}

	for _, f := range s.formats {
		if f.Accepts(mt) {
			return f, true
		}
	}

	if mt == "text/plain" || mt == "application/octet-stream" {
		return s.Default(), true
	}

	return Format{}, false
}

// AcceptsHeader reports whether at least one token across the Accept
// header values names f, or names */*. No Accept header at all is
// treated as accepting anything.
func AcceptsHeader(f Format, acceptValues []string) bool {
	if len(acceptValues) == 0 {
		return true
	}
	for _, raw := range acceptValues {
		for _, part := range strings.Split(raw, ",") {
			token := strings.TrimSpace(part)
			if semi := strings.IndexByte(token, ';'); semi >= 0 {
				token = strings.TrimSpace(token[:semi])
			}
			if token == "*/*" || f.Accepts(token) {
				return true
			}
		}
	}
	return false
}
