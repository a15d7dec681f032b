// Package export formats a generated description for the listing sites the
// UI copies it to. Every function is a pure string transform.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"listingcopy/pkg/zip"
)

// Target is a listing site with its own text conventions.
type Target string

const (
	// TargetNaver renders as plain text; emoji show up as boxes there.
	TargetNaver Target = "naver"
	// TargetZigbang keeps the description exactly as written.
	TargetZigbang Target = "zigbang"
)

// Targets lists every export target in display order.
var Targets = []Target{TargetNaver, TargetZigbang}

// ParseTarget returns the Target named by raw.
func ParseTarget(raw string) (Target, error) {
	switch Target(strings.ToLower(strings.TrimSpace(raw))) {
	case TargetNaver:
		return TargetNaver, nil
	case TargetZigbang:
		return TargetZigbang, nil
	default:
		return "", fmt.Errorf("unknown export target %q", raw)
	}
}

// Filename is the name used for target inside an export bundle.
func (t Target) Filename() string {
	return string(t) + ".txt"
}

var (
	emojiPattern = regexp.MustCompile(`[\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{2B00}-\x{2BFF}\x{2300}-\x{23FF}\x{1F1E6}-\x{1F1FF}\x{FE0E}\x{FE0F}\x{200D}\x{20E3}]`)
	innerSpaces  = regexp.MustCompile(`[ \t]{2,}`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// Format returns text as it should be pasted into target.
func Format(target Target, text string) string {
	switch target {
	case TargetNaver:
		return strings.TrimSpace(CollapseBlankLines(StripEmoji(text)))
	default:
		return text
	}
}

// StripEmoji removes emoji and the joiners/selectors around them, then tidies
// the whitespace they leave behind on each line.
func StripEmoji(text string) string {
	text = norm.NFC.String(text)
	stripped := emojiPattern.ReplaceAllString(text, "")
	lines := strings.Split(stripped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(innerSpaces.ReplaceAllString(line, " "))
	}
	return strings.Join(lines, "\n")
}

// CollapseBlankLines reduces every run of blank lines to a single one.
func CollapseBlankLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		}
	}
	return blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
}

// Bundle zips text formatted for every target, one file per target.
func Bundle(text string, modified time.Time) ([]byte, error) {
	files := make([]zip.File, 0, len(Targets))
	for _, target := range Targets {
		files = append(files, zip.File{
			Name:     target.Filename(),
			Data:     []byte(Format(target, text)),
			Modified: modified,
		})
	}
	return zip.Archive(files)
}
