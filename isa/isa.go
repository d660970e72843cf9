// Package isa defines the compiled knowledge-base document describing an
// instruction set: the merged instruction table and the special-register
// table in either flat or range-compressed form.
package isa

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Instruction is one architecture-tagged instruction record. Records with
// the same name may exist for different architecture generations when
// their descriptions or argument shapes differ.
type Instruction struct {
	Name               string   `json:"name"`
	Architectures      []string `json:"architectures"`
	Description        string   `json:"description,omitempty"`
	Args               []string `json:"args"`
	ArgTypes           []string `json:"arg_types"`
	ArgDataTypes       []string `json:"arg_data_types"`
	AvailableEncodings []string `json:"available_encodings"`
}

// MergeKey returns the identity key used to fold duplicate records seen
// across source documents. Encodings and data types are intentionally
// excluded: records differing only there are unioned.
func (ins *Instruction) MergeKey() string {
	return fmt.Sprintf("%s|%s|%s|%s",
		ins.Name, ins.Description, strings.Join(ins.Args, ","), strings.Join(ins.ArgTypes, ","))
}

// AddArchitecture unions an architecture tag into the record.
func (ins *Instruction) AddArchitecture(arch string) {
	for _, existing := range ins.Architectures {
		if existing == arch {
			return
		}
	}
	ins.Architectures = append(ins.Architectures, arch)
}

// SpecialRegister is a named non-general-purpose machine register.
type SpecialRegister struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RangeOverride carries a per-index description differing from the
// shared description of a register range.
type RangeOverride struct {
	Index       uint32 `json:"index"`
	Description string `json:"description,omitempty"`
}

// SpecialRegisterRange compresses a contiguous family of mechanically
// named registers ({prefix}{start} .. {prefix}{start+count-1}).
type SpecialRegisterRange struct {
	Prefix      string          `json:"prefix"`
	Start       uint32          `json:"start"`
	Count       uint32          `json:"count"`
	Description string          `json:"description,omitempty"`
	Overrides   []RangeOverride `json:"overrides,omitempty"`
}

// Expand reproduces the individual registers of the range. Each member
// carries the range description unless an override exists for its index.
func (r *SpecialRegisterRange) Expand() []SpecialRegister {
	overrides := make(map[uint32]string, len(r.Overrides))
	for _, o := range r.Overrides {
		overrides[o.Index] = o.Description
	}
	registers := make([]SpecialRegister, 0, r.Count)
	for offset := uint32(0); offset < r.Count; offset++ {
		index := r.Start + offset
		description := r.Description
		if override, ok := overrides[index]; ok {
			description = override
		}
		registers = append(registers, SpecialRegister{
			Name:        fmt.Sprintf("%s%d", r.Prefix, index),
			Description: description,
		})
	}
	return registers
}

// RegisterSet is the special-register table. On the wire it is either a
// flat JSON array of registers or a {singles, ranges} object; both
// deserialize into the same structure and serialize in compressed form.
type RegisterSet struct {
	Singles []SpecialRegister      `json:"singles"`
	Ranges  []SpecialRegisterRange `json:"ranges"`
}

func (s *RegisterSet) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &s.Singles)
	}
	type compressed RegisterSet
	var c compressed
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	*s = RegisterSet(c)
	return nil
}

// Expand flattens the set into individual registers, range members
// included.
func (s *RegisterSet) Expand() []SpecialRegister {
	registers := make([]SpecialRegister, 0, len(s.Singles))
	registers = append(registers, s.Singles...)
	for i := range s.Ranges {
		registers = append(registers, s.Ranges[i].Expand()...)
	}
	return registers
}

// Document is the serialized knowledge base produced by the compiler and
// consumed by the query engine.
type Document struct {
	Instructions     []Instruction `json:"instructions"`
	SpecialRegisters RegisterSet   `json:"special_registers"`
}
