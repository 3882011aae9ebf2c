package parser

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/value"
)

// DocumentParser turns JSON text into a value tree by recursive descent.
// Each grammar rule is one method; nesting depth is limited only by the
// goroutine stack.
type DocumentParser struct {
	cur cursor
}

// NewDocumentParser returns a parser over text.
func NewDocumentParser(text string) *DocumentParser {
	return &DocumentParser{cur: cursor{text: text}}
}

// Parse reads exactly one JSON value, surrounded by optional whitespace.
func (p *DocumentParser) Parse() (*value.Value, error) {
	p.cur.skipWhitespace()
	if p.cur.atEnd() {
		return nil, p.fail(errors.ErrUnexpectedCharacter, "unexpected end of input")
	}

	root, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.cur.skipWhitespace()
	if c, ok := p.cur.peek(); ok {
		return nil, p.fail(errors.ErrUnexpectedCharacter, fmt.Sprintf("unexpected trailing data starting with %q", c))
	}
	return root, nil
}

// Location reports where the parser currently stands.
func (p *DocumentParser) Location() Location {
	return p.cur.location()
}

func (p *DocumentParser) fail(kind error, message string) error {
	loc := p.cur.location()
	return errors.NewSyntaxError(kind, message, p.cur.pos, loc.Line, loc.Column)
}

// parseValue dispatches on the first byte of the value. The caller has
// already skipped whitespace and checked for end of input.
func (p *DocumentParser) parseValue() (*value.Value, error) {
	c, _ := p.cur.peek()
	switch {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return value.NewString(s), nil
	case c == 't':
		return p.parseLiteral("true", value.NewBool(true))
	case c == 'f':
		return p.parseLiteral("false", value.NewBool(false))
	case c == 'n':
		return p.parseLiteral("null", value.Null())
	case c == '-' || isDigit(c):
		return p.parseNumber()
	default:
		return nil, p.fail(errors.ErrUnexpectedCharacter, fmt.Sprintf("unexpected character %q", c))
	}
}

func (p *DocumentParser) parseLiteral(word string, v *value.Value) (*value.Value, error) {
	if !p.cur.hasPrefix(word) {
		return nil, p.fail(errors.ErrUnexpectedCharacter, fmt.Sprintf("invalid literal, expected %q", word))
	}
	p.cur.advanceN(len(word))
	return v, nil
}

func (p *DocumentParser) parseObject() (*value.Value, error) {
	p.cur.advance() // '{'
	v := value.NewObject()
	members, _ := v.AsObject()

	p.cur.skipWhitespace()
	if c, ok := p.cur.peek(); ok && c == '}' {
		p.cur.advance()
		return v, nil
	}

	for {
		p.cur.skipWhitespace()
		c, ok := p.cur.peek()
		if !ok {
			return nil, p.fail(errors.ErrUnterminatedObject, "unterminated object")
		}
		if c != '"' {
			return nil, p.fail(errors.ErrExpectedKeyName, fmt.Sprintf("expected object key, found %q", c))
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}

		p.cur.skipWhitespace()
		c, ok = p.cur.peek()
		if !ok {
			return nil, p.fail(errors.ErrUnterminatedObject, "unterminated object")
		}
		if c != ':' {
			return nil, p.fail(errors.ErrExpectedColon, fmt.Sprintf("expected ':' after key %q, found %q", key, c))
		}
		p.cur.advance()

		p.cur.skipWhitespace()
		if p.cur.atEnd() {
			return nil, p.fail(errors.ErrUnterminatedObject, "unterminated object")
		}
		item, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		// Duplicate keys keep the first occurrence.
		if _, err := members.Insert(key, item); err != nil {
			return nil, err
		}

		p.cur.skipWhitespace()
		c, ok = p.cur.peek()
		if !ok {
			return nil, p.fail(errors.ErrUnterminatedObject, "unterminated object")
		}
		switch c {
		case ',':
			p.cur.advance()
		case '}':
			p.cur.advance()
			return v, nil
		default:
			return nil, p.fail(errors.ErrExpectedCommaOrBracket, fmt.Sprintf("expected ',' or '}' in object, found %q", c))
		}
	}
}

func (p *DocumentParser) parseArray() (*value.Value, error) {
	p.cur.advance() // '['
	var items []*value.Value

	p.cur.skipWhitespace()
	if c, ok := p.cur.peek(); ok && c == ']' {
		p.cur.advance()
		return value.NewArray(), nil
	}

	for {
		p.cur.skipWhitespace()
		if p.cur.atEnd() {
			return nil, p.fail(errors.ErrUnterminatedArray, "unterminated array")
		}
		item, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.cur.skipWhitespace()
		c, ok := p.cur.peek()
		if !ok {
			return nil, p.fail(errors.ErrUnterminatedArray, "unterminated array")
		}
		switch c {
		case ',':
			p.cur.advance()
		case ']':
			p.cur.advance()
			return value.NewArray(items...), nil
		default:
			return nil, p.fail(errors.ErrExpectedCommaOrBracket, fmt.Sprintf("expected ',' or ']' in array, found %q", c))
		}
	}
}

func (p *DocumentParser) parseString() (string, error) {
	p.cur.advance() // opening quote
	var sb strings.Builder
	for {
		c, ok := p.cur.peek()
		if !ok {
			return "", p.fail(errors.ErrUnterminatedString, "unterminated string")
		}
		switch {
		case c == '"':
			p.cur.advance()
			return sb.String(), nil
		case c == '\\':
			p.cur.advance()
			if err := p.parseEscape(&sb); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", p.fail(errors.ErrInvalidCharacter, fmt.Sprintf("invalid control character %q in string", c))
		default:
			sb.WriteByte(c)
			p.cur.advance()
		}
	}
}

// parseEscape handles the byte after a backslash.
func (p *DocumentParser) parseEscape(sb *strings.Builder) error {
	c, ok := p.cur.peek()
	if !ok {
		return p.fail(errors.ErrUnterminatedString, "unterminated string")
	}
	switch c {
	case '"', '\\', '/':
		sb.WriteByte(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		p.cur.advance()
		r, err := p.parseUnicodeEscape()
		if err != nil {
			return err
		}
		sb.WriteRune(r)
		return nil
	default:
		return p.fail(errors.ErrInvalidEscape, fmt.Sprintf("invalid escape sequence '\\%c'", c))
	}
	p.cur.advance()
	return nil
}

// parseUnicodeEscape reads the XXXX of \uXXXX and joins surrogate pairs.
// Unpaired surrogates decode to U+FFFD.
func (p *DocumentParser) parseUnicodeEscape() (rune, error) {
	r, err := p.readHex4()
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(r) {
		return r, nil
	}
	if !p.cur.hasPrefix(`\u`) {
		return unicode.ReplacementChar, nil
	}
	save := p.cur.pos
	p.cur.advanceN(2)
	low, err := p.readHex4()
	if err != nil {
		return 0, err
	}
	if joined := utf16.DecodeRune(r, low); joined != unicode.ReplacementChar {
		return joined, nil
	}
	p.cur.pos = save
	return unicode.ReplacementChar, nil
}

func (p *DocumentParser) readHex4() (rune, error) {
	if len(p.cur.text)-p.cur.pos < 4 {
		return 0, p.fail(errors.ErrInvalidEscape, "incomplete unicode escape")
	}
	digits := p.cur.text[p.cur.pos : p.cur.pos+4]
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, p.fail(errors.ErrInvalidEscape, fmt.Sprintf("invalid unicode escape '\\u%s'", digits))
	}
	p.cur.advanceN(4)
	return rune(n), nil
}

func (p *DocumentParser) parseNumber() (*value.Value, error) {
	start := p.cur.pos
	integral := true

	if c, _ := p.cur.peek(); c == '-' {
		p.cur.advance()
	}
	if !p.consumeDigits() {
		return nil, p.fail(errors.ErrUnexpectedCharacter, "expected digit in number")
	}
	if c, ok := p.cur.peek(); ok && c == '.' {
		integral = false
		p.cur.advance()
		if !p.consumeDigits() {
			return nil, p.fail(errors.ErrUnexpectedCharacter, "expected digit after decimal point")
		}
	}
	if c, ok := p.cur.peek(); ok && (c == 'e' || c == 'E') {
		integral = false
		p.cur.advance()
		if c, ok := p.cur.peek(); ok && (c == '+' || c == '-') {
			p.cur.advance()
		}
		if !p.consumeDigits() {
			return nil, p.fail(errors.ErrUnexpectedCharacter, "expected digit in exponent")
		}
	}

	token := p.cur.text[start:p.cur.pos]
	v, err := classifyNumber(token, integral)
	if err != nil {
		return nil, p.fail(errors.ErrUnexpectedCharacter, err.Error())
	}
	return v, nil
}

func (p *DocumentParser) consumeDigits() bool {
	start := p.cur.pos
	for {
		c, ok := p.cur.peek()
		if !ok || !isDigit(c) {
			break
		}
		p.cur.advance()
	}
	return p.cur.pos > start
}

// int64 bounds as float64; 2^63 itself is out of range.
const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

// classifyNumber stores a token as Int when its float value has no
// fractional part and fits int64, and as Float otherwise. Tokens such as
// "5.0" and "1e3" therefore become Int. Plain digit tokens go through
// ParseInt first so large integers stay exact.
func classifyNumber(token string, integral bool) (*value.Value, error) {
	if integral {
		if i, err := strconv.ParseInt(token, 10, 64); err == nil {
			return value.NewInt(i), nil
		}
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, fmt.Errorf("number %s out of range", token)
	}
	if f == math.Floor(f) && f >= minInt64Float && f < maxInt64Float {
		return value.NewInt(int64(f)), nil
	}
	return value.NewFloat(f), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Parse parses a complete JSON document held in text.
func Parse(text string) (*value.Value, error) {
	return NewDocumentParser(text).Parse()
}

// ParseBytes parses a complete JSON document held in data.
func ParseBytes(data []byte) (*value.Value, error) {
	return Parse(string(data))
}

// ParseReader reads all of r and parses it as one document.
func ParseReader(r io.Reader) (*value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ReadFile returns the contents of path, or "" if it cannot be read.
func ReadFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// LoadFile parses the file at path using ReadFile. A missing file surfaces
// as a parse error on the empty text.
func LoadFile(path string) (*value.Value, error) {
	return Parse(ReadFile(path))
}

// ParseFile parses the file at path and reports missing or empty files
// as input errors.
func ParseFile(filePath string) (*value.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseBytes(data)
}
