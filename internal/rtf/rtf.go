// Package rtf encodes Unicode text into the base64-wrapped rich-text
// payload the proprietary presentation format embeds in its text elements.
//
// The payload reproduces the Cocoa RTF the target renderer writes itself:
// one font-table entry with the GB2312 charset id, a color table whose
// index 2 is the white text fill and index 3 the black outline stroke, bold
// text with kerning/expansion directives, and a negative-width outline
// stroke for legibility over media backgrounds. Characters above 0x7F are
// encoded via the CJK codepage first; anything the codepage cannot
// represent falls back to RTF Unicode escapes within the same run.
package rtf

import (
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// Alignment selects the paragraph alignment directive.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
)

func (a Alignment) directive() string {
	if a == AlignLeft {
		return `\ql`
	}
	return `\qc`
}

// EncodingError reports text that could not be represented. The Unicode
// fallback makes this unreachable for valid UTF-8 input; it surfacing means
// a defect, not a user error.
type EncodingError struct {
	Text string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode text %.20q: %v", e.Text, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Stage classifies the error for engine reporting.
func (e *EncodingError) Stage() string { return "encoding" }

// template wraps the encoded run. The first verb is the font name, the
// second the alignment directive, the third the font size in half-points,
// the fourth the run itself.
const template = `{\rtf1\ansi\ansicpg1252\cocoartf2822
\cocoatextscaling0\cocoaplatform0{\fonttbl\f0\fnil\fcharset134 %s;}
{\colortbl;\red255\green255\blue255;\red255\green255\blue255;\red0\green0\blue0;}
{\*\expandedcolortbl;;\csgray\c100000;\cssrgb\c0\c0\c0;}
\pard\pardirnatural%s\partightenfactor0

\f0\b\fs%d \cf2 \kerning1\expnd8\expndtw40
\outl0\strokewidth-40 \strokec3 %s
}`

// Encode converts text into the base64 form stored in an RTFData element.
// fontSize is in RTF half-points.
func Encode(text, fontFamily string, fontSize int, align Alignment) (string, error) {
	run, err := encodeRun(text)
	if err != nil {
		return "", &EncodingError{Text: text, Err: err}
	}
	payload := fmt.Sprintf(template, fontFamily, align.directive(), fontSize, run)
	return base64.StdEncoding.EncodeToString([]byte(payload)), nil
}

func encodeRun(text string) (string, error) {
	gbk := simplifiedchinese.GBK.NewEncoder()
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteString("\\\n")
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x80:
			b.WriteRune(r)
		default:
			if raw, err := gbk.Bytes([]byte(string(r))); err == nil {
				for _, c := range raw {
					fmt.Fprintf(&b, `\'%02x`, c)
				}
			} else {
				writeUnicodeEscape(&b, r)
			}
		}
	}
	return b.String(), nil
}

// writeUnicodeEscape emits \uN? escapes. RTF \u takes a signed 16-bit
// value, so BMP code points above 0x7FFF wrap negative and astral code
// points become a surrogate pair.
func writeUnicodeEscape(b *strings.Builder, r rune) {
	if r > 0xFFFF {
		v := r - 0x10000
		writeUnicodeEscape(b, 0xD800+(v>>10))
		writeUnicodeEscape(b, 0xDC00+(v&0x3FF))
		return
	}
	fmt.Fprintf(b, `\u%d?`, int16(r))
}
