package extractor

import (
	"bufio"
	"os"
	"strings"
)

// cookieSniffLines is how many leading lines are inspected.
const cookieSniffLines = 15

// LooksLikeNetscapeCookieFile reports whether the file structurally resembles
// a Netscape-format cookies.txt: either a "# Netscape" header marker or a
// tab-delimited record with at least 7 fields within the first lines.
// It does not validate the content; it only rejects obviously wrong files.
func LooksLikeNetscapeCookieFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < cookieSniffLines && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(strings.ToLower(line), "# netscape") {
			return true
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		if strings.Count(line, "\t") >= 6 {
			return true
		}

		// Any other content this early means some other format.
		return false
	}

	return false
}
