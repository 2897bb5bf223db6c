// Package sections classifies song section labels (V1, C2, PC1, TAG1) into
// kinds and maps each kind to the fixed group color and display name the
// presentation formats use.
package sections

import (
	"fmt"
	"strings"
)

// Kind identifies a section category derived from a label's leading letters.
type Kind int

const (
	KindOther Kind = iota
	KindVerse
	KindChorus
	KindBridge
	KindPreChorus
	KindTag
)

// Group colors in the renderer's "r g b a" 0-1 float form. The verse,
// chorus, pre-chorus, and default values are the exact constants the
// consuming software writes itself.
const (
	colorVerse     = "0 0 0.9981992244720459 1"
	colorChorus    = "0.9859541654586792 0 0.02694005146622658 1"
	colorBridge    = "1 1 1 1"
	colorPreChorus = "0.1352526992559433 1 0.0248868502676487 1"
	colorTag       = "1 1 0 1"
	colorDefault   = "0.2637968361377716 0.2637968361377716 0.2637968361377716 1"
)

// DefaultColor is the group color for media and positioned-slide groups.
const DefaultColor = colorDefault

// KindOf derives the section kind from the label's alphabetic prefix.
// Mapping is by prefix, never by full label: V7 is still a verse.
func KindOf(label string) Kind {
	switch prefix(label) {
	case "V":
		return KindVerse
	case "C":
		return KindChorus
	case "B":
		return KindBridge
	case "PC":
		return KindPreChorus
	case "T", "TAG":
		return KindTag
	default:
		return KindOther
	}
}

// Color returns the fixed group color for a kind.
func (k Kind) Color() string {
	switch k {
	case KindVerse:
		return colorVerse
	case KindChorus:
		return colorChorus
	case KindBridge:
		return colorBridge
	case KindPreChorus:
		return colorPreChorus
	case KindTag:
		return colorTag
	default:
		return colorDefault
	}
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindVerse:
		return "verse"
	case KindChorus:
		return "chorus"
	case KindBridge:
		return "bridge"
	case KindPreChorus:
		return "pre-chorus"
	case KindTag:
		return "tag"
	default:
		return "other"
	}
}

// DisplayName expands a label into the group name shown in the operator UI:
// "V2" becomes "Verse 2". Labels with an unrecognized prefix pass through
// unchanged.
func DisplayName(label string) string {
	kind := KindOf(label)
	if kind == KindOther {
		return label
	}
	name := map[Kind]string{
		KindVerse:     "Verse",
		KindChorus:    "Chorus",
		KindBridge:    "Bridge",
		KindPreChorus: "Pre-Chorus",
		KindTag:       "Tag",
	}[kind]
	if num := number(label); num != "" {
		return fmt.Sprintf("%s %s", name, num)
	}
	return name
}

func prefix(label string) string {
	i := 0
	for i < len(label) && label[i] >= 'A' && label[i] <= 'Z' {
		i++
	}
	return label[:i]
}

func number(label string) string {
	return strings.TrimLeft(label, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
}
