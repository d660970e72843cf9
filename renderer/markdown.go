package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/boopdotpng/amdgpu-lsp/extractor"
	"github.com/boopdotpng/amdgpu-lsp/isa"
	"github.com/boopdotpng/amdgpu-lsp/query"
)

// MarkdownRenderer renders resolved records as hover markdown.
type MarkdownRenderer struct{}

func NewMarkdownRenderer() Renderer {
	return &MarkdownRenderer{}
}

func (r *MarkdownRenderer) Render(result *query.Result, output io.Writer) error {
	switch result.Outcome {
	case query.NotFound:
		_, err := io.WriteString(output, "not found\n")
		return err
	case query.FilteredOut:
		_, err := io.WriteString(output, "filtered out by architecture\n")
		return err
	}
	_, err := io.WriteString(output, Hover(result.Entry, result.Variant)+"\n")
	return err
}

func (r *MarkdownRenderer) Format() string {
	return "markdown"
}

// Mnemonic returns the display casing of an instruction name.
func Mnemonic(name string) string {
	return strings.ToLower(name)
}

// argTypeLabels abbreviates semantic categories for display; unknown
// types are omitted entirely.
var argTypeLabels = map[string]string{
	extractor.KindRegister:         "reg",
	extractor.KindRegisterOrInline: "reg/inline",
	extractor.KindImmediate:        "imm",
	extractor.KindLabel:            extractor.KindLabel,
	extractor.KindMemory:           extractor.KindMemory,
	extractor.KindSpecial:          extractor.KindSpecial,
}

// dataTypeLabels abbreviates the vendor numeric-format tags.
var dataTypeLabels = map[string]string{
	"FMT_NUM_B32":  "b32",
	"FMT_NUM_B64":  "b64",
	"FMT_NUM_F16":  "f16",
	"FMT_NUM_F32":  "f32",
	"FMT_NUM_F64":  "f64",
	"FMT_NUM_BF16": "bf16",
	"FMT_NUM_I8":   "i8",
	"FMT_NUM_I16":  "i16",
	"FMT_NUM_I32":  "i32",
	"FMT_NUM_I64":  "i64",
	"FMT_NUM_U16":  "u16",
	"FMT_NUM_U32":  "u32",
	"FMT_NUM_U64":  "u64",
	"FMT_ANY":      "any",
}

// argLabel builds the "name: type" display for one argument.
func argLabel(entry *isa.Instruction, index int) string {
	arg := entry.Args[index]
	typeLabel := ""
	if index < len(entry.ArgTypes) {
		typeLabel = argTypeLabels[entry.ArgTypes[index]]
	}
	dataLabel := ""
	if index < len(entry.ArgDataTypes) {
		dataLabel = dataTypeLabels[entry.ArgDataTypes[index]]
	}
	switch {
	case typeLabel != "" && dataLabel != "":
		return fmt.Sprintf("%s: %s %s", arg, typeLabel, dataLabel)
	case typeLabel != "":
		return fmt.Sprintf("%s: %s", arg, typeLabel)
	case dataLabel != "":
		return fmt.Sprintf("%s: %s", arg, dataLabel)
	default:
		return arg
	}
}

// Hover builds the hover markdown for a resolved instruction record.
func Hover(entry *isa.Instruction, variant query.Variant) string {
	lines := []string{fmt.Sprintf("**%s**", Mnemonic(entry.Name))}
	if len(entry.Args) > 0 {
		argLabels := make([]string, len(entry.Args))
		for i := range entry.Args {
			argLabels[i] = argLabel(entry, i)
		}
		lines = append(lines, strings.Join(argLabels, ", "))
	}
	if entry.Description != "" {
		lines = append(lines, entry.Description)
	}
	if archs := Architectures(entry.Architectures); archs != "" {
		lines = append(lines, "Architectures: "+archs)
	}
	if variant != query.VariantNative {
		if encoding, ok := query.MatchEncoding(entry.AvailableEncodings, variant); ok {
			if description, ok := query.EncodingDescription(encoding); ok {
				lines = append(lines, "Encoding: "+description)
			} else {
				lines = append(lines, "Encoding: "+encoding)
			}
		} else {
			lines = append(lines, "Encoding: "+variant.Label())
		}
	}
	return strings.Join(lines, "\n\n")
}

// RegisterHover builds the hover markdown for a special register.
func RegisterHover(register *isa.SpecialRegister) string {
	lines := []string{fmt.Sprintf("**%s**", register.Name)}
	if register.Description != "" {
		lines = append(lines, register.Description)
	}
	return strings.Join(lines, "\n\n")
}

// Architectures groups tags of the same family into compact
// multi-version notation: rdna3, rdna3.5, rdna4 renders as rdna3/3.5/4.
func Architectures(tags []string) string {
	type familyGroup struct {
		family   string
		versions []string
	}
	var groups []*familyGroup
	byFamily := make(map[string]*familyGroup)
	for _, tag := range tags {
		family := tag
		version := ""
		for i, ch := range tag {
			if ch >= '0' && ch <= '9' {
				family, version = tag[:i], tag[i:]
				break
			}
		}
		group, ok := byFamily[family]
		if !ok {
			group = &familyGroup{family: family}
			byFamily[family] = group
			groups = append(groups, group)
		}
		if version != "" {
			group.versions = append(group.versions, version)
		}
	}
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		if len(group.versions) == 0 {
			parts = append(parts, group.family)
			continue
		}
		parts = append(parts, group.family+strings.Join(group.versions, "/"))
	}
	return strings.Join(parts, ", ")
}
