package extractor

import (
	"sort"
	"strings"
)

// Semantic operand categories. The vendor operand-type vocabulary is
// closed, so classification is a fixed table rather than anything
// extensible.
const (
	KindImmediate        = "immediate"
	KindLabel            = "label"
	KindMemory           = "memory"
	KindRegister         = "register"
	KindRegisterOrInline = "register_or_inline"
	KindSpecial          = "special"
	KindUnknown          = "unknown"
)

var registerTags = map[string]bool{
	"OPR_VGPR":               true,
	"OPR_SREG":               true,
	"OPR_SDST":               true,
	"OPR_SSRC":               true,
	"OPR_SSRC_LANESEL":       true,
	"OPR_SSRC_SPECIAL_SCC":   true,
	"OPR_SRC":                true,
	"OPR_SRC_VGPR":           true,
	"OPR_SRC_VGPR_OR_INLINE": true,
	"OPR_VCC":                true,
	"OPR_EXEC":               true,
	"OPR_SDST_EXEC":          true,
	"OPR_SDST_M0":            true,
	"OPR_SDST_NULL":          true,
	"OPR_PC":                 true,
	"OPR_TGT":                true,
}

var specialTags = map[string]bool{
	"OPR_SENDMSG":        true,
	"OPR_SENDMSG_RTN":    true,
	"OPR_WAITCNT":        true,
	"OPR_WAITCNT_DEPCTR": true,
	"OPR_WAIT_EVENT":     true,
	"OPR_HWREG":          true,
	"OPR_ATTR":           true,
	"OPR_VERSION":        true,
	"OPR_CLAUSE":         true,
}

// classify maps a raw operand-type tag to its semantic category.
func classify(typeTag string) string {
	switch {
	case typeTag == "":
		return KindUnknown
	case strings.HasPrefix(typeTag, "OPR_SIMM") || typeTag == "OPR_SMEM_OFFSET" || typeTag == "OPR_DELAY":
		return KindImmediate
	case typeTag == "OPR_LABEL":
		return KindLabel
	case typeTag == "OPR_DSMEM" || typeTag == "OPR_FLAT_SCRATCH":
		return KindMemory
	case typeTag == "OPR_SRC_VGPR_OR_INLINE":
		return KindRegisterOrInline
	case registerTags[typeTag]:
		return KindRegister
	case specialTags[typeTag]:
		return KindSpecial
	default:
		return KindUnknown
	}
}

// label picks the display label for an operand: field name, then raw
// type tag, then a literal placeholder.
func (op *operand) label() string {
	if op.fieldName != "" {
		return op.fieldName
	}
	if op.typeTag != "" {
		return op.typeTag
	}
	return "operand"
}

// buildArgs produces the ordered, display-ready argument lists for an
// instruction from its first declared encoding. Encodings are assumed
// operand-compatible for argument listing. Operands without a declared
// order sort last, stably; implicit operands are elided.
func buildArgs(encodings []instructionEncoding) (args, argTypes, argDataTypes []string) {
	args = []string{}
	argTypes = []string{}
	argDataTypes = []string{}
	if len(encodings) == 0 {
		return args, argTypes, argDataTypes
	}
	operands := make([]operand, len(encodings[0].operands))
	copy(operands, encodings[0].operands)
	sort.SliceStable(operands, func(i, j int) bool {
		return sortOrder(operands[i]) < sortOrder(operands[j])
	})
	for _, op := range operands {
		if op.implicit {
			continue
		}
		args = append(args, op.label())
		argTypes = append(argTypes, classify(op.typeTag))
		if op.dataFormat != "" {
			argDataTypes = append(argDataTypes, op.dataFormat)
		} else {
			argDataTypes = append(argDataTypes, KindUnknown)
		}
	}
	return args, argTypes, argDataTypes
}

func sortOrder(op operand) int {
	if op.order < 0 {
		return int(^uint(0) >> 1)
	}
	return op.order
}
