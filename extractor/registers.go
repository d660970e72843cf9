package extractor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/boopdotpng/amdgpu-lsp/isa"
)

// SpecialRegisters parses the predefined operand values of an ISA XML
// document into raw special-register records. Entries without a name are
// dropped; everything else (filtering, overrides, deduplication) happens
// in the compiler.
func SpecialRegisters(path string) ([]isa.SpecialRegister, error) {
	docfile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening document: %w", err)
	}
	defer func() {
		_ = docfile.Close()
	}()

	var (
		registers    []isa.SpecialRegister
		current      *isa.SpecialRegister
		inPredefined bool
		target       = targetNone
		text         strings.Builder
	)

	decoder := xml.NewDecoder(docfile)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing document %s: %w", path, err)
		}
		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "OperandPredefinedValues":
				inPredefined = true
			case "PredefinedValue":
				if inPredefined {
					current = &isa.SpecialRegister{}
				}
			case "Name":
				if current != nil {
					target = targetRegisterName
				}
			case "Description":
				if current != nil {
					target = targetRegisterDescription
				}
			case "Value":
				target = targetNone
			}
		case xml.EndElement:
			switch elem.Name.Local {
			case "OperandPredefinedValues":
				inPredefined = false
			case "PredefinedValue":
				if current != nil && current.Name != "" {
					registers = append(registers, *current)
				}
				current = nil
			case "Name", "Description", "Value":
				value := strings.TrimSpace(text.String())
				text.Reset()
				if current != nil && value != "" {
					switch target {
					case targetRegisterName:
						current.Name = value
					case targetRegisterDescription:
						current.Description = value
					}
				}
				target = targetNone
			}
		case xml.CharData:
			if target != targetNone {
				text.Write(elem)
			}
		}
	}
	return registers, nil
}
