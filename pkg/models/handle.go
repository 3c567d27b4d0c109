package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Handle is the document-unique identity of a CadObject. Zero means the object
// has never been attached to a document.
type Handle uint64

// String renders the handle the way DXF does: uppercase hexadecimal without a
// prefix.
func (h Handle) String() string {
	return strings.ToUpper(strconv.FormatUint(uint64(h), 16))
}

// ParseHandle parses a hexadecimal handle as found in DXF files.
func ParseHandle(s string) (Handle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid handle %q: %w", s, err)
	}
	return Handle(v), nil
}
