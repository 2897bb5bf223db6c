// Package identity issues the globally-unique identifiers ProPresenter uses
// to address documents, groups, slides, cues, and display elements.
//
// Identifiers are uppercase UUIDv4 strings. They are never derived from
// content: regenerating the same source material yields fresh identifiers by
// design, since the consuming renderer disambiguates objects by identity,
// not content.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Zero is the nil identifier the renderer uses for "no next cue".
const Zero = "00000000-0000-0000-0000-000000000000"

// New returns a fresh identifier in the uppercase hyphenated form the
// target formats require.
func New() string {
	return strings.ToUpper(uuid.NewString())
}

// Sequence returns a deterministic generator producing ZERO-padded
// identifier-shaped values. It exists for tests that need byte-stable
// output; production code always uses New.
func Sequence() func() string {
	var n int
	return func() string {
		n++
		id := uuid.UUID{}
		id[12] = byte(n >> 24)
		id[13] = byte(n >> 16)
		id[14] = byte(n >> 8)
		id[15] = byte(n)
		return strings.ToUpper(id.String())
	}
}
