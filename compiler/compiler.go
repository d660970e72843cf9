// Package compiler folds extracted records from all source documents
// into the final knowledge base: duplicate instructions seen across
// architecture generations are unioned into tagged records and the
// special-register family is compressed into range descriptors.
package compiler

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/boopdotpng/amdgpu-lsp/arch"
	"github.com/boopdotpng/amdgpu-lsp/extractor"
	"github.com/boopdotpng/amdgpu-lsp/isa"
)

// Compiler accumulates records across documents. It is mutated by a
// single orchestrating goroutine only; compilation is one pass.
type Compiler struct {
	instructions []isa.Instruction
	keyIndex     map[string]int
	registers    map[string]isa.SpecialRegister
}

func New() *Compiler {
	return &Compiler{
		keyIndex:  make(map[string]int),
		registers: make(map[string]isa.SpecialRegister),
	}
}

// AddFile extracts one document and folds its records into the running
// tables. An unparsable document fails the whole run.
func (c *Compiler) AddFile(path string) error {
	label, instructions, err := extractor.File(path)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", path, err)
	}
	normalized := arch.Normalize(label)
	for i := range instructions {
		if len(instructions[i].Architectures) == 0 {
			instructions[i].Architectures = []string{normalized}
			continue
		}
		tags := make([]string, len(instructions[i].Architectures))
		for j, tag := range instructions[i].Architectures {
			tags[j] = arch.Normalize(tag)
		}
		instructions[i].Architectures = tags
	}
	c.merge(instructions)

	if !isRDNASource(path) {
		return nil
	}
	registers, err := extractor.SpecialRegisters(path)
	if err != nil {
		return fmt.Errorf("failed to extract registers from %s: %w", path, err)
	}
	c.addRegisters(registers)
	return nil
}

// merge folds instructions into the table by identity key. First
// occurrence inserts; later occurrences with the same key union their
// architecture tags into the existing record.
func (c *Compiler) merge(instructions []isa.Instruction) {
	for _, ins := range instructions {
		key := ins.MergeKey()
		if index, ok := c.keyIndex[key]; ok {
			for _, tag := range ins.Architectures {
				c.instructions[index].AddArchitecture(tag)
			}
			continue
		}
		c.keyIndex[key] = len(c.instructions)
		c.instructions = append(c.instructions, ins)
	}
}

// addRegisters filters, normalizes and deduplicates raw register
// records. Duplicate names keep the longer description.
func (c *Compiler) addRegisters(registers []isa.SpecialRegister) {
	for _, reg := range registers {
		key := strings.ToLower(reg.Name)
		if isIgnoredRegister(key) {
			continue
		}
		reg = normalizeRegister(reg)
		existing, ok := c.registers[key]
		if !ok {
			c.registers[key] = reg
			continue
		}
		if reg.Description != "" && len(reg.Description) > len(existing.Description) {
			existing.Description = reg.Description
			c.registers[key] = existing
		}
	}
}

// Document produces the final knowledge base: the merged instruction
// table plus the compressed register table.
func (c *Compiler) Document() isa.Document {
	keys := make([]string, 0, len(c.registers))
	for key := range c.registers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	registers := make([]isa.SpecialRegister, 0, len(keys))
	for _, key := range keys {
		registers = append(registers, c.registers[key])
	}
	return isa.Document{
		Instructions:     c.instructions,
		SpecialRegisters: compressRegisters(registers),
	}
}

// isRDNASource reports whether a document carries register definitions
// worth extracting; only the RDNA documents do.
func isRDNASource(path string) bool {
	return strings.Contains(filepath.Base(path), "rdna")
}
