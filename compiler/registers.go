package compiler

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/boopdotpng/amdgpu-lsp/isa"
)

// wellKnownRegisters forces canonical descriptions for the architectural
// registers whose document text is unhelpful or missing.
var wellKnownRegisters = map[string]string{
	"exec":            "Wavefront execution mask (64-bit). Each bit enables a lane.",
	"exec_lo":         "Lower 32 bits of EXEC (lane execution mask).",
	"exec_hi":         "Upper 32 bits of EXEC (lane execution mask).",
	"scc":             "Scalar condition code (single-bit compare result).",
	"src_scc":         "Scalar condition code (single-bit compare result).",
	"vcc":             "Vector condition code register (64-bit). Per-lane compare results.",
	"vcc_lo":          "Lower 32 bits of VCC (vector condition codes).",
	"vcc_hi":          "Upper 32 bits of VCC (vector condition codes).",
	"pc":              "Program counter (64-bit).",
	"flat_scratch":    "Flat scratch base/size pair (64-bit).",
	"flat_scratch_lo": "Lower 32 bits of FLAT_SCRATCH (base/size).",
	"flat_scratch_hi": "Upper 32 bits of FLAT_SCRATCH (base/size).",
}

// compressPrefixes are the register-file families known to form real
// contiguous hardware ranges.
var compressPrefixes = map[string]bool{
	"attr":  true,
	"param": true,
	"mrt":   true,
	"pos":   true,
	"ttmp":  true,
}

// isSeeAbove detects the cross-reference placeholder used in the vendor
// documents instead of a real description.
func isSeeAbove(description string) bool {
	trimmed := strings.TrimSpace(description)
	return trimmed == "<p>See above.</p>" || strings.EqualFold(trimmed, "see above")
}

func usableDescription(description string) bool {
	return strings.TrimSpace(description) != "" && !isSeeAbove(description)
}

// isNumericLiteral reports whether a name is a bare numeric constant
// listed among the predefined values.
func isNumericLiteral(name string) bool {
	_, err := strconv.ParseFloat(name, 64)
	return err == nil
}

// isPlainRegister matches plain numbered vector and scalar registers
// such as v12 or s3. They are not special registers.
func isPlainRegister(name string) bool {
	if len(name) < 2 || (name[0] != 'v' && name[0] != 's') {
		return false
	}
	for _, ch := range name[1:] {
		if !unicode.IsDigit(ch) {
			return false
		}
	}
	return true
}

func isIgnoredRegister(lowerName string) bool {
	return isPlainRegister(lowerName) || isNumericLiteral(lowerName)
}

// normalizeRegister clears placeholder descriptions and applies the
// well-known canonical descriptions.
func normalizeRegister(reg isa.SpecialRegister) isa.SpecialRegister {
	if isSeeAbove(reg.Description) {
		reg.Description = ""
	}
	if canonical, ok := wellKnownRegisters[strings.ToLower(reg.Name)]; ok {
		reg.Description = canonical
	}
	return reg
}

// splitNumericSuffix splits a register name into a non-numeric prefix
// and trailing numeric suffix, from the first digit on. Names without a
// clean split stay ungrouped.
func splitNumericSuffix(name string) (string, uint32, bool) {
	split := -1
	for i, ch := range name {
		if ch >= '0' && ch <= '9' {
			split = i
			break
		}
	}
	if split <= 0 {
		return "", 0, false
	}
	index, err := strconv.ParseUint(name[split:], 10, 32)
	if err != nil {
		return "", 0, false
	}
	return name[:split], uint32(index), true
}

type indexedRegister struct {
	index    uint32
	register isa.SpecialRegister
}

// compressRegisters groups mechanically indexed register families into
// range descriptors. Only known hardware register files are eligible; a
// range requires a contiguous run of at least 3 indices. Everything else
// is flattened back to individual records.
func compressRegisters(all []isa.SpecialRegister) isa.RegisterSet {
	groups := make(map[string][]indexedRegister)
	singles := []isa.SpecialRegister{}
	for _, reg := range all {
		prefix, index, ok := splitNumericSuffix(reg.Name)
		if !ok {
			singles = append(singles, reg)
			continue
		}
		groups[prefix] = append(groups[prefix], indexedRegister{index: index, register: reg})
	}

	prefixes := make([]string, 0, len(groups))
	for prefix := range groups {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	ranges := []isa.SpecialRegisterRange{}
	for _, prefix := range prefixes {
		members := groups[prefix]
		if !compressPrefixes[prefix] {
			singles = append(singles, flattenFamily(members)...)
			continue
		}
		sort.SliceStable(members, func(i, j int) bool { return members[i].index < members[j].index })
		if !isContiguous(members) || len(members) < 3 {
			for _, member := range members {
				singles = append(singles, member.register)
			}
			continue
		}
		ranges = append(ranges, buildRange(prefix, members))
	}

	kept := singles[:0]
	for _, reg := range singles {
		if usableDescription(reg.Description) {
			kept = append(kept, reg)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Name < kept[j].Name })
	return isa.RegisterSet{Singles: kept, Ranges: ranges}
}

// flattenFamily returns an ineligible family as individual registers,
// backfilling missing descriptions from the first usable one found
// anywhere in the family.
func flattenFamily(members []indexedRegister) []isa.SpecialRegister {
	fallback := ""
	for _, member := range members {
		if usableDescription(member.register.Description) {
			fallback = member.register.Description
			break
		}
	}
	flattened := make([]isa.SpecialRegister, 0, len(members))
	for _, member := range members {
		reg := member.register
		if !usableDescription(reg.Description) {
			reg.Description = fallback
		}
		if strings.TrimSpace(reg.Description) == "" {
			continue
		}
		flattened = append(flattened, reg)
	}
	return flattened
}

func isContiguous(sorted []indexedRegister) bool {
	if len(sorted) == 0 {
		return false
	}
	start := sorted[0].index
	for offset, member := range sorted {
		if member.index != start+uint32(offset) {
			return false
		}
	}
	return true
}

// buildRange emits a range descriptor: the shared description is the
// most frequent usable description (ties broken by the first maximal
// entry in sorted tally order), with per-index overrides for members
// that differ.
func buildRange(prefix string, members []indexedRegister) isa.SpecialRegisterRange {
	tally := make(map[string]int)
	for _, member := range members {
		if usableDescription(member.register.Description) {
			tally[member.register.Description]++
		}
	}
	descriptions := make([]string, 0, len(tally))
	for description := range tally {
		descriptions = append(descriptions, description)
	}
	sort.Strings(descriptions)
	shared := ""
	best := 0
	for _, description := range descriptions {
		if tally[description] > best {
			best = tally[description]
			shared = description
		}
	}

	overrides := []isa.RangeOverride{}
	for _, member := range members {
		description := member.register.Description
		if usableDescription(description) && description != shared {
			overrides = append(overrides, isa.RangeOverride{Index: member.index, Description: description})
		}
	}
	return isa.SpecialRegisterRange{
		Prefix:      prefix,
		Start:       members[0].index,
		Count:       uint32(len(members)),
		Description: shared,
		Overrides:   overrides,
	}
}
