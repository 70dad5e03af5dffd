package thriftmux

import (
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// BinaryFormat, CompactFormat, JSONFormat and SimpleJSONFormat are the
// four protocols the reference Apache Thrift libraries ship, wired to
// the media types clients already use against Thrift-over-HTTP
// deployments in the wild.
var (
	BinaryFormat = Format{
		Name:              "binary",
		AcceptMediaTypes:  []string{"application/x-thrift", "application/vnd.apache.thrift.binary"},
		ResponseMediaType: "application/x-thrift",
		Protocol:          thrift.NewTBinaryProtocolFactoryDefault(),
	}

	CompactFormat = Format{
		Name:              "compact",
		AcceptMediaTypes:  []string{"application/vnd.apache.thrift.compact"},
		ResponseMediaType: "application/vnd.apache.thrift.compact",
		Protocol:          thrift.NewTCompactProtocolFactory(),
	}

	JSONFormat = Format{
		Name:              "json",
		AcceptMediaTypes:  []string{"application/vnd.apache.thrift.json", "application/json"},
		ResponseMediaType: "application/vnd.apache.thrift.json",
		Protocol:          thrift.NewTJSONProtocolFactory(),
	}

	SimpleJSONFormat = Format{
		Name:              "text",
		AcceptMediaTypes:  []string{"application/vnd.apache.thrift.simplejson"},
		ResponseMediaType: "application/vnd.apache.thrift.simplejson",
		Protocol:          thrift.NewTSimpleJSONProtocolFactory(),
	}
)

// builtinFormats indexes the four stock formats by the name a config
// file or a caller names them by.
var builtinFormats = map[string]Format{
	BinaryFormat.Name:     BinaryFormat,
	CompactFormat.Name:    CompactFormat,
	JSONFormat.Name:       JSONFormat,
	SimpleJSONFormat.Name: SimpleJSONFormat,
}

// DefaultFormats builds the FormatSet every example binary mounts:
// binary is the default, the other three are negotiable via
// Content-Type/Accept.
func DefaultFormats() (*FormatSet, error) {
	return NewFormatSet(BinaryFormat, CompactFormat, JSONFormat, SimpleJSONFormat)
}

// ConfiguredFormats builds the FormatSet a MuxConfig names: defaultName
// selects the format used when a request carries no Content-Type,
// enabledNames the full set negotiable via Content-Type/Accept. Both are
// looked up against the four stock formats; an unknown name is a
// configuration error rather than a silent fallback to DefaultFormats.
func ConfiguredFormats(defaultName string, enabledNames []string) (*FormatSet, error) {
	def, ok := builtinFormats[defaultName]
	if !ok {
		return nil, fmt.Errorf("thriftmux: unknown default format %q", defaultName)
	}

	others := make([]Format, 0, len(enabledNames))
	for _, name := range enabledNames {
		if name == defaultName {
			continue
		}
		f, ok := builtinFormats[name]
		if !ok {
			return nil, fmt.Errorf("thriftmux: unknown format %q", name)
		}
		others = append(others, f)
	}

	return NewFormatSet(def, others...)
}
