// Package application contains the relay pipeline and export services.
// Services depend only on port interfaces from domain/port/driven.
package application

import (
	"regexp"
	"strconv"

	"github.com/efrayne/prrelay/internal/domain/model"
)

// prLinkPattern matches GitHub pull request URLs embedded in free-form text.
// No normalization is attempted: case variants, trailing path segments, and
// query strings are matched only as far as the digits run.
var prLinkPattern = regexp.MustCompile(`https://github\.com/([^/]+)/([^/]+)/pull/(\d+)`)

// ExtractPRReference scans text for the first GitHub pull request link and
// returns the parsed reference. The second return value is false when the
// text contains no PR link.
func ExtractPRReference(text string) (model.PRReference, bool) {
	m := prLinkPattern.FindStringSubmatch(text)
	if m == nil {
		return model.PRReference{}, false
	}

	number, err := strconv.Atoi(m[3])
	if err != nil {
		// Unreachable for \d+ short of overflow-length digit runs.
		return model.PRReference{}, false
	}

	return model.PRReference{Owner: m[1], Repo: m[2], Number: number}, true
}
