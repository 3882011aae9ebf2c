package writer

// IndentChar is the byte repeated to indent nested lines.
type IndentChar byte

const (
	// IndentSpace indents with ' '.
	IndentSpace IndentChar = ' '
	// IndentTab indents with '\t'.
	IndentTab IndentChar = '\t'
)

// Params controls the whitespace the Writer emits. Counts below zero are
// treated as zero.
type Params struct {
	IndentChar  IndentChar
	IndentWidth int // indent chars per nesting level, 0 disables indentation

	SpacesAfterKey           int
	SpacesAfterColon         int
	SpacesAfterOpenBracket   int
	SpacesBeforeCloseBracket int
	SpacesAfterComma         int

	// NewlineAfterOpenBracket also puts the closing bracket on its own line.
	NewlineAfterOpenBracket bool
	NewlineAfterComma       bool

	// CompactEmpty writes empty arrays and objects as [] and {} whatever the
	// other settings say.
	CompactEmpty bool
}

// Compact returns params that emit no whitespace at all.
func Compact() Params {
	return Params{
		IndentChar:   IndentSpace,
		CompactEmpty: true,
	}
}

// Pretty returns params for four-space indented output with one member or
// element per line.
func Pretty() Params {
	return Params{
		IndentChar:              IndentSpace,
		IndentWidth:             4,
		SpacesAfterColon:        1,
		NewlineAfterOpenBracket: true,
		NewlineAfterComma:       true,
		CompactEmpty:            true,
	}
}
