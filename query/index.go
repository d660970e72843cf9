// Package query loads a compiled knowledge base into an immutable
// name-keyed index and resolves raw tokens against it. The index is
// built once at startup; every query afterwards is a read-only pure
// function, safe for concurrent callers.
package query

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/boopdotpng/amdgpu-lsp/arch"
	"github.com/boopdotpng/amdgpu-lsp/isa"
	"github.com/xyproto/env/v2"
)

// DefaultDataPath is the knowledge-base location used when neither the
// caller nor the environment provides one.
const DefaultDataPath = "data/isa.json"

// DataPathEnv overrides the knowledge-base location at runtime.
const DataPathEnv = "AMDGPU_LSP_DATA"

// Outcome classifies a resolution result. NotFound and FilteredOut are
// both normal "no answer" outcomes; they are distinguished only so the
// dispatcher can log them differently.
type Outcome int

const (
	Found Outcome = iota
	NotFound
	FilteredOut
)

// Result is the answer to a point query.
type Result struct {
	Outcome Outcome
	Entry   *isa.Instruction
	Variant Variant
}

// LoadInfo records where the knowledge base was read from and whether
// loading failed. A load failure is diagnostic, never fatal: the engine
// keeps serving from an empty index.
type LoadInfo struct {
	DataPath string
	Err      error
}

// Index is the in-memory knowledge base. Multiple architecture-specific
// records may share a name; per-name order is document insertion order.
type Index struct {
	entries   map[string][]isa.Instruction
	names     []string
	registers []isa.SpecialRegister
	info      LoadInfo
}

// Load reads the knowledge base from path, or from $AMDGPU_LSP_DATA /
// the default location when path is empty. Missing or malformed files
// degrade to an empty index with the error recorded in LoadInfo.
func Load(path string) *Index {
	if path == "" {
		path = env.Str(DataPathEnv, DefaultDataPath)
	}
	index := &Index{
		entries: make(map[string][]isa.Instruction),
		info:    LoadInfo{DataPath: path},
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		index.info.Err = fmt.Errorf("failed to read knowledge base: %w", err)
		return index
	}
	var doc isa.Document
	if err := json.Unmarshal(contents, &doc); err != nil {
		index.info.Err = fmt.Errorf("failed to parse knowledge base: %w", err)
		return index
	}
	return FromDocument(doc, path)
}

// FromDocument builds an index directly from a knowledge-base document.
func FromDocument(doc isa.Document, path string) *Index {
	index := &Index{
		entries: make(map[string][]isa.Instruction, len(doc.Instructions)),
		info:    LoadInfo{DataPath: path},
	}
	for _, entry := range doc.Instructions {
		key := strings.ToLower(entry.Name)
		if _, ok := index.entries[key]; !ok {
			index.names = append(index.names, key)
		}
		index.entries[key] = append(index.entries[key], entry)
	}
	index.registers = doc.SpecialRegisters.Expand()
	sort.SliceStable(index.registers, func(i, j int) bool {
		return index.registers[i].Name < index.registers[j].Name
	})
	return index
}

// Info returns the load diagnostics.
func (ix *Index) Info() LoadInfo {
	return ix.info
}

// Len returns the number of instruction records in the index.
func (ix *Index) Len() int {
	total := 0
	for _, entries := range ix.entries {
		total += len(entries)
	}
	return total
}

// Names returns the number of distinct instruction names.
func (ix *Index) Names() int {
	return len(ix.names)
}

// Resolve answers a point query: the token's encoding-variant suffix is
// split off, the base name is looked up, and when a filter is active the
// first record satisfying it wins. Without a filter the first record in
// insertion order wins.
func (ix *Index) Resolve(token, filter string) Result {
	base, variant := SplitVariant(token)
	entries, ok := ix.entries[strings.ToLower(base)]
	if !ok {
		return Result{Outcome: NotFound, Variant: variant}
	}
	if filter == "" {
		return Result{Outcome: Found, Entry: &entries[0], Variant: variant}
	}
	for i := range entries {
		if arch.Matches(entries[i].Architectures, filter) {
			return Result{Outcome: Found, Entry: &entries[i], Variant: variant}
		}
	}
	return Result{Outcome: FilteredOut, Variant: variant}
}

// SpecialRegister looks up a special register by case-insensitive name.
func (ix *Index) SpecialRegister(name string) (*isa.SpecialRegister, bool) {
	for i := range ix.registers {
		if strings.EqualFold(ix.registers[i].Name, name) {
			return &ix.registers[i], true
		}
	}
	return nil, false
}

// SpecialRegisters returns the expanded register table, sorted by name.
func (ix *Index) SpecialRegisters() []isa.SpecialRegister {
	return ix.registers
}

// Complete returns the first record of every instruction name starting
// with the given prefix, sorted by name. The prefix is matched
// case-insensitively.
func (ix *Index) Complete(prefix string) []isa.Instruction {
	lower := strings.ToLower(prefix)
	var matches []isa.Instruction
	for _, name := range ix.names {
		if !strings.HasPrefix(name, lower) {
			continue
		}
		entries := ix.entries[name]
		matches = append(matches, entries[0])
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return strings.ToLower(matches[i].Name) < strings.ToLower(matches[j].Name)
	})
	return matches
}
