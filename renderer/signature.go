package renderer

import (
	"strings"

	"github.com/boopdotpng/amdgpu-lsp/isa"
)

// Parameter is one argument of a signature, addressed by label offsets
// so editors can highlight the active argument.
type Parameter struct {
	Start int
	End   int
	Doc   string
}

// Signature is a parameter-labeled description of an instruction's
// argument list.
type Signature struct {
	Label           string
	Documentation   string
	Parameters      []Parameter
	ActiveParameter int // -1 when the instruction takes no arguments
}

// BuildSignature builds the signature for an instruction with the
// active parameter derived from the number of commas typed before the
// cursor, clamped to the last argument.
func BuildSignature(entry *isa.Instruction, commasBeforeCursor int) Signature {
	sig := Signature{
		Label:           Mnemonic(entry.Name),
		Documentation:   entry.Description,
		ActiveParameter: -1,
	}
	if len(entry.Args) == 0 {
		return sig
	}
	sig.ActiveParameter = commasBeforeCursor
	if last := len(entry.Args) - 1; sig.ActiveParameter > last {
		sig.ActiveParameter = last
	}

	var label strings.Builder
	label.WriteString(sig.Label)
	label.WriteByte(' ')
	for i, arg := range entry.Args {
		start := label.Len()
		label.WriteString(arg)
		doc := ""
		if i < len(entry.ArgTypes) {
			doc = strings.ReplaceAll(entry.ArgTypes[i], "register", "reg")
		}
		sig.Parameters = append(sig.Parameters, Parameter{Start: start, End: label.Len(), Doc: doc})
		if i < len(entry.Args)-1 {
			label.WriteString(", ")
		}
	}
	sig.Label = label.String()
	return sig
}

// ActiveParameterAt counts the commas in the argument section of a line
// before the cursor. The argument section is everything after the first
// whitespace following the mnemonic; the second return is false when the
// cursor is still inside the mnemonic.
func ActiveParameterAt(lineBeforeCursor string) (int, bool) {
	trimmed := strings.TrimLeft(lineBeforeCursor, " \t")
	split := strings.IndexFunc(trimmed, func(ch rune) bool { return ch == ' ' || ch == '\t' })
	if split < 0 {
		return 0, false
	}
	return strings.Count(trimmed[split:], ","), true
}
