package errors

import (
	"errors"
	"fmt"
)

// Input and file errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// Syntax errors raised by the parser
var (
	ErrUnexpectedCharacter    = errors.New("unexpected character")
	ErrUnterminatedString     = errors.New("unterminated string")
	ErrUnterminatedObject     = errors.New("unterminated object")
	ErrUnterminatedArray      = errors.New("unterminated array")
	ErrInvalidEscape          = errors.New("invalid escape sequence")
	ErrInvalidCharacter       = errors.New("invalid character in string")
	ErrExpectedKeyName        = errors.New("expected key name")
	ErrExpectedColon          = errors.New("expected ':'")
	ErrExpectedCommaOrBracket = errors.New("expected ',' or closing bracket")
)

// Value API misuse
var (
	ErrNotAnObject        = errors.New("value is not an object")
	ErrNotAnArray         = errors.New("value is not an array")
	ErrTypeMismatch       = errors.New("value kind mismatch")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrModifyOnEmptyValue = errors.New("cannot modify a value that does not exist")
	ErrEmptyValue         = errors.New("value does not exist")
	ErrCyclicValue        = errors.New("value cannot contain itself")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeValue   ErrorType = "value"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// SyntaxError describes malformed JSON text. Kind is one of the parser
// sentinels above; Line and Column are 1-based.
type SyntaxError struct {
	Kind    error
	Message string
	Offset  int
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
}

// Unwrap returns the sentinel kind so errors.Is matches it.
func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewSyntaxError wraps a located syntax error in a parsing AppError.
func NewSyntaxError(kind error, message string, offset, line, column int) *AppError {
	se := &SyntaxError{
		Kind:    kind,
		Message: message,
		Offset:  offset,
		Line:    line,
		Column:  column,
	}
	return NewParsingError("invalid JSON document", se)
}

// NewValueError creates a new error related to document access or mutation
func NewValueError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeValue,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("JSON parsing error: %s", syntaxErr.Error())
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeValue:
			return fmt.Sprintf("Document error: %s", appErr.Message)
		case ErrorTypeConfig:
			if appErr.Err != nil {
				return fmt.Sprintf("Configuration error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
