// Package writer renders value trees as JSON text.
package writer

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/value"
)

const hexDigits = "0123456789abcdef"

// Writer renders values according to its Params. A Writer may be reused but
// not shared between goroutines.
type Writer struct {
	params Params
	buf    bytes.Buffer
	depth  int
}

// NewWriter creates a Writer using params.
func NewWriter(params Params) *Writer {
	return &Writer{params: params}
}

// Write renders v. Object members come out in key order, array elements in
// stored order.
func (w *Writer) Write(v *value.Value) (string, error) {
	w.buf.Reset()
	w.depth = 0
	if err := w.writeValue(v); err != nil {
		return "", err
	}
	return w.buf.String(), nil
}

// Write renders v with params.
func Write(v *value.Value, params Params) (string, error) {
	return NewWriter(params).Write(v)
}

// WriteCompact renders v without whitespace.
func WriteCompact(v *value.Value) (string, error) {
	return Write(v, Compact())
}

// WritePretty renders v with the Pretty preset.
func WritePretty(v *value.Value) (string, error) {
	return Write(v, Pretty())
}

// WriteFile renders v with params and writes it to path followed by a
// newline.
func WriteFile(path string, v *value.Value, params Params) error {
	text, err := Write(v, params)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	return nil
}

func (w *Writer) writeValue(v *value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		w.buf.WriteString("null")
	case value.KindBool:
		b, _ := v.AsBool()
		w.buf.WriteString(strconv.FormatBool(b))
	case value.KindInt:
		i, _ := v.AsInt()
		w.buf.WriteString(strconv.FormatInt(i, 10))
	case value.KindFloat:
		f, _ := v.AsFloat()
		w.writeFloat(f)
	case value.KindString:
		s, _ := v.AsString()
		w.writeString(s)
	case value.KindArray:
		items, _ := v.AsArray()
		return w.writeArray(items)
	case value.KindObject:
		obj, _ := v.AsObject()
		return w.writeObject(obj)
	default:
		return errors.NewValueError("cannot write a value that does not exist", errors.ErrEmptyValue)
	}
	return nil
}

// writeFloat uses Go's shortest round-trip form. JSON has no NaN or
// infinities, so those are written as null.
func (w *Writer) writeFloat(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		w.buf.WriteString("null")
		return
	}
	w.buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

func (w *Writer) writeString(s string) {
	w.buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			w.buf.WriteString(`\"`)
		case '\\':
			w.buf.WriteString(`\\`)
		case '\b':
			w.buf.WriteString(`\b`)
		case '\f':
			w.buf.WriteString(`\f`)
		case '\n':
			w.buf.WriteString(`\n`)
		case '\r':
			w.buf.WriteString(`\r`)
		case '\t':
			w.buf.WriteString(`\t`)
		default:
			if c < 0x20 {
				w.buf.WriteString(`\u00`)
				w.buf.WriteByte(hexDigits[c>>4])
				w.buf.WriteByte(hexDigits[c&0xf])
				continue
			}
			w.buf.WriteByte(c)
		}
	}
	w.buf.WriteByte('"')
}

func (w *Writer) writeArray(items []*value.Value) error {
	if len(items) == 0 {
		w.writeEmpty('[', ']')
		return nil
	}
	w.open('[')
	for i, item := range items {
		if i > 0 {
			w.comma()
		}
		if err := w.writeValue(item); err != nil {
			return err
		}
	}
	w.close(']')
	return nil
}

func (w *Writer) writeObject(obj *value.Object) error {
	if obj.Len() == 0 {
		w.writeEmpty('{', '}')
		return nil
	}
	w.open('{')
	var err error
	first := true
	obj.Range(func(key string, item *value.Value) bool {
		if !first {
			w.comma()
		}
		first = false
		w.writeString(key)
		w.spaces(w.params.SpacesAfterKey)
		w.buf.WriteByte(':')
		w.spaces(w.params.SpacesAfterColon)
		err = w.writeValue(item)
		return err == nil
	})
	if err != nil {
		return err
	}
	w.close('}')
	return nil
}

func (w *Writer) writeEmpty(open, close byte) {
	w.buf.WriteByte(open)
	if !w.params.CompactEmpty {
		w.spaces(w.params.SpacesAfterOpenBracket)
		if w.params.NewlineAfterOpenBracket {
			w.newline()
		}
		w.spaces(w.params.SpacesBeforeCloseBracket)
	}
	w.buf.WriteByte(close)
}

func (w *Writer) open(c byte) {
	w.buf.WriteByte(c)
	w.spaces(w.params.SpacesAfterOpenBracket)
	w.depth++
	if w.params.NewlineAfterOpenBracket {
		w.newline()
	}
}

func (w *Writer) close(c byte) {
	w.depth--
	if w.params.NewlineAfterOpenBracket {
		w.newline()
	}
	w.spaces(w.params.SpacesBeforeCloseBracket)
	w.buf.WriteByte(c)
}

func (w *Writer) comma() {
	w.buf.WriteByte(',')
	if w.params.NewlineAfterComma {
		w.newline()
		return
	}
	w.spaces(w.params.SpacesAfterComma)
}

// newline starts a new line indented to the current depth.
func (w *Writer) newline() {
	w.buf.WriteByte('\n')
	ch := byte(w.params.IndentChar)
	if ch == 0 {
		ch = byte(IndentSpace)
	}
	n := w.depth * w.params.IndentWidth
	for i := 0; i < n; i++ {
		w.buf.WriteByte(ch)
	}
}

func (w *Writer) spaces(n int) {
	for i := 0; i < n; i++ {
		w.buf.WriteByte(' ')
	}
}
