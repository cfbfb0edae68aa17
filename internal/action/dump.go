package action

import (
	"fmt"
	"io"
)

// Dump writes one diagnostic line for a to w. Write errors are ignored.
func (a *Action) Dump(prefix string, w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s%s\n", prefix, a.String())
}

// String is the dump line without prefix or newline.
func (a *Action) String() string {
	return fmt.Sprintf("title=%s contentDescription=%s icon=%s action=%s",
		a.title, a.description, a.icon, a.callback.Target())
}
