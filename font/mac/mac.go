// Package mac decodes Macintosh-platform name and AAT strings into
// UTF-8. Fonts emitted before Unicode cmaps were universal still carry
// platform-1 "name" records and AAT lookup format-2 class tables in
// Mac Roman; this package is the one place that encoding is turned
// into Go strings.
package mac

import (
	"golang.org/x/text/encoding/charmap"
)

// Decode converts a Mac Roman byte string to UTF-8. Bytes that
// charmap.Macintosh has no mapping for are dropped rather than
// producing an error, matching how font metadata readers elsewhere in
// this engine tolerate malformed auxiliary strings.
func Decode(b []byte) string {
	out, err := charmap.Macintosh.NewDecoder().Bytes(b)
	if err != nil {
		return string(out)
	}
	return string(out)
}
