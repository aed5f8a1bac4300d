package extractor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCookieFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLooksLikeNetscapeCookieFile(t *testing.T) {
	tabLine := ".youtube.com\tTRUE\t/\tTRUE\t1999999999\tSID\tvalue"

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "header comment",
			content: "# Netscape HTTP Cookie File\n",
			want:    true,
		},
		{
			name:    "header after blank lines",
			content: "\n\n# netscape format\n",
			want:    true,
		},
		{
			name:    "tab separated fields without header",
			content: tabLine + "\n",
			want:    true,
		},
		{
			name:    "tab line after unrelated comments",
			content: "# exported by browser\n# do not edit\n" + tabLine + "\n",
			want:    true,
		},
		{
			name:    "json content",
			content: "[{\"domain\": \".youtube.com\", \"name\": \"SID\"}]\n",
			want:    false,
		},
		{
			name:    "plain text",
			content: "these are not cookies\n",
			want:    false,
		},
		{
			name:    "too few fields",
			content: ".youtube.com\tTRUE\t/\n",
			want:    false,
		},
		{
			name:    "empty file",
			content: "",
			want:    false,
		},
		{
			name:    "only comments",
			content: "# just a comment\n# another\n",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCookieFile(t, tt.content)
			if got := LooksLikeNetscapeCookieFile(path); got != tt.want {
				t.Errorf("LooksLikeNetscapeCookieFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLooksLikeNetscapeCookieFile_MissingFile(t *testing.T) {
	if LooksLikeNetscapeCookieFile(filepath.Join(t.TempDir(), "absent.txt")) {
		t.Error("missing file should not pass the sniff")
	}
}

func TestLooksLikeNetscapeCookieFile_SniffWindow(t *testing.T) {
	// The sniff inspects only the first lines; a valid line buried deeper
	// than the window does not rescue the file.
	content := strings.Repeat("# comment\n", cookieSniffLines) +
		".youtube.com\tTRUE\t/\tTRUE\t1999999999\tSID\tvalue\n"
	path := writeCookieFile(t, content)
	if LooksLikeNetscapeCookieFile(path) {
		t.Error("content past the sniff window should be ignored")
	}
}
