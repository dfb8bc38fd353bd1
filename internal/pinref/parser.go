package pinref

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single node or pin name.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Endpoint addresses one pin on one node. Pin is either a pin name or a
// pin ID; resolving it against a node is up to the caller.
type Endpoint struct {
	Node string
	Pin  string
}

// String returns the canonical "node.pin" form.
func (e Endpoint) String() string {
	return e.Node + "." + e.Pin
}

// Parse reads an endpoint of the form "node.pin".
func Parse(raw string) (Endpoint, error) {
	if raw == "" {
		return Endpoint{}, fmt.Errorf("endpoint cannot be empty")
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 2 {
		return Endpoint{}, fmt.Errorf("endpoint %q must have the form node.pin", raw)
	}
	for _, segment := range parts {
		if segment == "" {
			return Endpoint{}, fmt.Errorf("endpoint %q contains an empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) || segment == "-" {
			return Endpoint{}, fmt.Errorf("invalid segment %q in endpoint %q", segment, raw)
		}
	}
	return Endpoint{Node: parts[0], Pin: parts[1]}, nil
}
