package board

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Render writes the widget as plain text.
func (b *Board) Render(w io.Writer) error {
	s := b.Snapshot()
	var sb strings.Builder

	count := "..."
	if s.State != StateLoading {
		count = fmt.Sprint(len(s.Comments))
	}
	plural := "s"
	if len(s.Comments) == 1 {
		plural = ""
	}
	fmt.Fprintf(&sb, "%s Comment%s\n\n", count, plural)

	switch {
	case s.State == StateLoading:
		sb.WriteString("Loading comments...\n")
	case s.State == StateError:
		sb.WriteString(s.LoadError + "\n")
	case len(s.Comments) == 0:
		sb.WriteString("Be the first to leave a comment!\n")
	default:
		for _, c := range s.Comments {
			fmt.Fprintf(&sb, "[%s] %s - %s\n", initial(c.Name), c.Name, c.Timestamp.In(b.loc).Format(dateLayout))
			for _, line := range strings.Split(c.Message, "\n") {
				sb.WriteString("    " + line + "\n")
			}
			sb.WriteString("\n")
		}
	}

	if s.Submitting {
		sb.WriteString("Submitting...\n")
	}
	if s.Notice != "" {
		sb.WriteString(s.Notice + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}
