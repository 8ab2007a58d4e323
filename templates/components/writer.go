package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates markup for a templ component and keeps the first write error,
// so component bodies read top to bottom without an error check per line.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps the writer handed to a templ.ComponentFunc
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is
func (w *Writer) Raw(s string) *Writer {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
	return w
}

// Text writes escaped text, valid both as element content and inside a quoted attribute
func (w *Writer) Text(s string) *Writer {
	return w.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped
func (w *Writer) Attr(name, value string) *Writer {
	return w.Raw(" " + name + "=\"").Text(value).Raw("\"")
}

// BoolAttr writes ` name` when on is true
func (w *Writer) BoolAttr(name string, on bool) *Writer {
	if on {
		w.Raw(" " + name)
	}
	return w
}

// Component renders a child component in place
func (w *Writer) Component(ctx context.Context, c templ.Component) *Writer {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
	return w
}

// Err returns the first error met while writing
func (w *Writer) Err() error {
	return w.err
}
