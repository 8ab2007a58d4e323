package components

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	child := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<i>child</i>")
		return err
	})

	err := NewWriter(&buf).
		Raw("<p").Attr("title", `a "quoted" <value>`).BoolAttr("hidden", true).BoolAttr("disabled", false).Raw(">").
		Text("1 < 2").
		Component(context.Background(), child).
		Raw("</p>").
		Err()

	assert.NoError(t, err)
	assert.Equal(t, `<p title="a &#34;quoted&#34; &lt;value&gt;" hidden>1 &lt; 2<i>child</i></p>`, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWriter_KeepsFirstError(t *testing.T) {
	w := NewWriter(failingWriter{})
	w.Raw("a").Text("b")

	assert.EqualError(t, w.Err(), "closed")
}

func TestJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, JSON(map[string]int{"a": 1}))
	assert.Equal(t, "{}", JSON(make(chan int)))
}
