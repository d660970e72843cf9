// Package extractor streams vendor ISA XML documents and yields raw
// instruction and special-register records. It holds no cross-document
// state; classification and merging happen in the compiler.
package extractor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/boopdotpng/amdgpu-lsp/isa"
)

// textTarget identifies which record field the current character data
// belongs to.
type textTarget int

const (
	targetNone textTarget = iota
	targetInstructionName
	targetArchitectureName
	targetDescription
	targetEncodingName
	targetOperandFieldName
	targetOperandType
	targetOperandDataFormat
	targetOperandSize
	targetRegisterName
	targetRegisterDescription
)

// operand is the raw per-encoding operand declaration.
type operand struct {
	fieldName  string
	typeTag    string
	dataFormat string
	size       int
	input      bool
	output     bool
	implicit   bool
	order      int // -1 when the document declares no order
}

// instructionEncoding is one concrete bit-encoding form with its
// declared operands.
type instructionEncoding struct {
	name     string
	operands []operand
}

// instructionDoc accumulates one <Instruction> element before it is
// folded into an isa.Instruction.
type instructionDoc struct {
	name        string
	description string
	encodings   []instructionEncoding
}

// File parses a single ISA XML document and returns the document's raw
// architecture label plus its instruction records. Unparsable markup
// aborts with a wrapped error.
func File(path string) (string, []isa.Instruction, error) {
	fpath, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("error resolving absolute filepath: %w", err)
	}
	docfile, err := os.Open(fpath)
	if err != nil {
		return "", nil, fmt.Errorf("error opening document: %w", err)
	}
	defer func() {
		_ = docfile.Close()
	}()

	var (
		instructions   []isa.Instruction
		current        *instructionDoc
		currEncoding   *instructionEncoding
		currOperand    *operand
		target         = targetNone
		text           strings.Builder
		architecture   string
		inAliasedNames bool
	)

	decoder := xml.NewDecoder(docfile)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", nil, fmt.Errorf("error parsing document %s: %w", path, err)
		}
		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "Instruction":
				current = &instructionDoc{}
			case "AliasedInstructionNames":
				inAliasedNames = true
			case "InstructionName":
				if !inAliasedNames {
					target = targetInstructionName
				}
			case "ArchitectureName":
				target = targetArchitectureName
			case "Description":
				if current != nil {
					target = targetDescription
				}
			case "InstructionEncoding":
				currEncoding = &instructionEncoding{}
			case "EncodingName":
				if currEncoding != nil {
					target = targetEncodingName
				}
			case "Operand":
				currOperand = parseOperandAttrs(elem)
			case "FieldName":
				target = targetOperandFieldName
			case "OperandType":
				target = targetOperandType
			case "DataFormatName":
				target = targetOperandDataFormat
			case "OperandSize":
				target = targetOperandSize
			}
		case xml.EndElement:
			switch elem.Name.Local {
			case "AliasedInstructionNames":
				inAliasedNames = false
			case "Instruction":
				if current != nil {
					record := current.record()
					if architecture != "" {
						record.Architectures = append(record.Architectures, architecture)
					}
					instructions = append(instructions, record)
					current = nil
				}
			case "InstructionEncoding":
				if current != nil && currEncoding != nil {
					current.encodings = append(current.encodings, *currEncoding)
				}
				currEncoding = nil
			case "Operand":
				if currEncoding != nil && currOperand != nil {
					currEncoding.operands = append(currEncoding.operands, *currOperand)
				}
				currOperand = nil
			case "InstructionName", "ArchitectureName", "Description",
				"EncodingName", "FieldName", "OperandType", "DataFormatName", "OperandSize":
				flushText(&text, target, current, currEncoding, currOperand, &architecture)
				target = targetNone
			}
		case xml.CharData:
			if target != targetNone {
				text.Write(elem)
			}
		}
	}
	return architecture, instructions, nil
}

// flushText assigns accumulated character data to the targeted field.
func flushText(text *strings.Builder, target textTarget, current *instructionDoc,
	currEncoding *instructionEncoding, currOperand *operand, architecture *string) {
	value := strings.TrimSpace(text.String())
	text.Reset()
	if value == "" {
		return
	}
	switch target {
	case targetInstructionName:
		if current != nil {
			current.name = value
		}
	case targetArchitectureName:
		if *architecture == "" {
			*architecture = value
		}
	case targetDescription:
		if current != nil {
			current.description = value
		}
	case targetEncodingName:
		if currEncoding != nil {
			currEncoding.name = value
		}
	case targetOperandFieldName:
		if currOperand != nil {
			currOperand.fieldName = value
		}
	case targetOperandType:
		if currOperand != nil {
			currOperand.typeTag = value
		}
	case targetOperandDataFormat:
		if currOperand != nil {
			currOperand.dataFormat = value
		}
	case targetOperandSize:
		if currOperand != nil {
			if size, err := strconv.Atoi(value); err == nil {
				currOperand.size = size
			}
		}
	}
}

// parseOperandAttrs reads the operand declaration attributes.
func parseOperandAttrs(elem xml.StartElement) *operand {
	op := &operand{order: -1}
	for _, attr := range elem.Attr {
		switch attr.Name.Local {
		case "Input":
			op.input = strings.EqualFold(attr.Value, "true")
		case "Output":
			op.output = strings.EqualFold(attr.Value, "true")
		case "IsImplicit":
			op.implicit = strings.EqualFold(attr.Value, "true")
		case "Order":
			if order, err := strconv.Atoi(attr.Value); err == nil {
				op.order = order
			}
		}
	}
	return op
}

// record folds the accumulated element into the final instruction shape:
// display args from the first encoding, encoding names deduplicated and
// sorted.
func (doc *instructionDoc) record() isa.Instruction {
	args, argTypes, argDataTypes := buildArgs(doc.encodings)
	seen := make(map[string]bool)
	encodings := make([]string, 0, len(doc.encodings))
	for _, enc := range doc.encodings {
		if enc.name != "" && !seen[enc.name] {
			seen[enc.name] = true
			encodings = append(encodings, enc.name)
		}
	}
	sort.Strings(encodings)
	return isa.Instruction{
		Name:               doc.name,
		Description:        doc.description,
		Args:               args,
		ArgTypes:           argTypes,
		ArgDataTypes:       argDataTypes,
		AvailableEncodings: encodings,
	}
}
