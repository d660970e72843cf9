package query

import "strings"

// Variant identifies which concrete bit-encoding form of an instruction
// a token refers to, derived from its naming-convention suffix.
type Variant int

const (
	VariantNative Variant = iota
	VariantE32
	VariantE64
	VariantDPP
	VariantSDWA
	VariantE64DPP
)

// variantSuffixes is checked in order; longer suffixes come first so a
// name ending in _e64_dpp never classifies as plain _dpp or _e64.
var variantSuffixes = []struct {
	suffix  string
	variant Variant
}{
	{"_e64_dpp", VariantE64DPP},
	{"_e32", VariantE32},
	{"_e64", VariantE64},
	{"_dpp", VariantDPP},
	{"_sdwa", VariantSDWA},
}

// Label returns a short human-readable name for the variant, used when
// no concrete encoding matches.
func (v Variant) Label() string {
	switch v {
	case VariantE32:
		return "32-bit encoding"
	case VariantE64:
		return "64-bit encoding"
	case VariantDPP:
		return "data-parallel primitives encoding"
	case VariantSDWA:
		return "sub-DWORD addressing encoding"
	case VariantE64DPP:
		return "64-bit encoding with data-parallel primitives"
	default:
		return "native encoding"
	}
}

// SplitVariant splits a recognized encoding-variant suffix off a raw
// token. The base keeps the token's original casing.
func SplitVariant(mnemonic string) (string, Variant) {
	lower := strings.ToLower(mnemonic)
	for _, entry := range variantSuffixes {
		if strings.HasSuffix(lower, entry.suffix) {
			return mnemonic[:len(mnemonic)-len(entry.suffix)], entry.variant
		}
	}
	return mnemonic, VariantNative
}

// MatchEncoding picks the concrete encoding name best matching a variant
// from a record's available encodings: bare base encodings for the
// native and 32-bit forms, VOP3 for the 64-bit form, wider swizzle
// variants preferred for DPP, and VOP3+DPP for the combined form.
func MatchEncoding(available []string, variant Variant) (string, bool) {
	switch variant {
	case VariantNative:
		for _, enc := range available {
			if strings.HasPrefix(enc, "ENC_") && !strings.Contains(enc, "LITERAL") {
				return enc, true
			}
		}
	case VariantE32:
		for _, enc := range available {
			if enc == "ENC_VOP1" || enc == "ENC_VOP2" || enc == "ENC_VOPC" {
				return enc, true
			}
		}
	case VariantE64:
		for _, enc := range available {
			if enc == "ENC_VOP3" {
				return enc, true
			}
		}
	case VariantDPP:
		for _, enc := range available {
			if strings.Contains(enc, "DPP16") {
				return enc, true
			}
		}
		for _, enc := range available {
			if strings.Contains(enc, "DPP") {
				return enc, true
			}
		}
	case VariantSDWA:
		for _, enc := range available {
			if strings.Contains(enc, "SDWA") {
				return enc, true
			}
		}
	case VariantE64DPP:
		for _, enc := range available {
			if strings.HasPrefix(enc, "VOP3") && strings.Contains(enc, "DPP16") {
				return enc, true
			}
		}
		for _, enc := range available {
			if strings.HasPrefix(enc, "VOP3") && strings.Contains(enc, "DPP") {
				return enc, true
			}
		}
	}
	return "", false
}

// encodingDescriptions is the fixed vendor encoding vocabulary.
var encodingDescriptions = map[string]string{
	"ENC_VOP1":  "VOP1 (32-bit): Vector ALU operation with one source",
	"ENC_VOP2":  "VOP2 (32-bit): Vector ALU operation with two sources",
	"ENC_VOPC":  "VOPC (32-bit): Vector ALU comparison operation",
	"ENC_VOP3":  "VOP3 (64-bit): Extended vector ALU with modifiers and additional operand flexibility",
	"ENC_VOP3P": "VOP3P (64-bit): Packed vector ALU operation",

	"VOP1_VOP_DPP":   "VOP1 + DPP16: Data-parallel primitives with 16-lane swizzle",
	"VOP1_VOP_DPP16": "VOP1 + DPP16: Data-parallel primitives with 16-lane swizzle",
	"VOP1_VOP_DPP8":  "VOP1 + DPP8: Data-parallel primitives with 8-lane swizzle",
	"VOP2_VOP_DPP":   "VOP2 + DPP16: Data-parallel primitives with 16-lane swizzle",
	"VOP2_VOP_DPP16": "VOP2 + DPP16: Data-parallel primitives with 16-lane swizzle",
	"VOP2_VOP_DPP8":  "VOP2 + DPP8: Data-parallel primitives with 8-lane swizzle",
	"VOPC_VOP_DPP":   "VOPC + DPP16: Comparison with data-parallel primitives (16-lane)",
	"VOPC_VOP_DPP16": "VOPC + DPP16: Comparison with data-parallel primitives (16-lane)",
	"VOPC_VOP_DPP8":  "VOPC + DPP8: Comparison with data-parallel primitives (8-lane)",
	"VOP3_VOP_DPP16": "VOP3 + DPP16: Extended VOP3 with data-parallel primitives (16-lane)",
	"VOP3_VOP_DPP8":  "VOP3 + DPP8: Extended VOP3 with data-parallel primitives (8-lane)",

	"VOP3P_VOP_DPP16": "VOP3P + DPP16: Packed operation with data-parallel primitives (16-lane)",
	"VOP3P_VOP_DPP8":  "VOP3P + DPP8: Packed operation with data-parallel primitives (8-lane)",

	"VOP3_SDST_ENC_VOP_DPP16": "VOP3 SDST + DPP16: VOP3 with scalar destination and DPP (16-lane)",
	"VOP3_SDST_ENC_VOP_DPP8":  "VOP3 SDST + DPP8: VOP3 with scalar destination and DPP (8-lane)",

	"VOP1_VOP_SDWA": "VOP1 + SDWA: Sub-DWORD addressing for byte/word operations",
	"VOP2_VOP_SDWA": "VOP2 + SDWA: Sub-DWORD addressing for byte/word operations",
	"VOPC_VOP_SDWA": "VOPC + SDWA: Comparison with sub-DWORD addressing",

	"VOP1_INST_LITERAL":  "VOP1 + Literal (64-bit): Includes 32-bit inline constant",
	"VOP2_INST_LITERAL":  "VOP2 + Literal (64-bit): Includes 32-bit inline constant",
	"VOPC_INST_LITERAL":  "VOPC + Literal (64-bit): Includes 32-bit inline constant",
	"VOP3_INST_LITERAL":  "VOP3 + Literal (96-bit): VOP3 with 32-bit inline constant",
	"VOP3P_INST_LITERAL": "VOP3P + Literal (96-bit): Packed operation with 32-bit inline constant",

	"VOP3_SDST_ENC":              "VOP3 SDST (64-bit): VOP3 with scalar destination",
	"VOP3_SDST_ENC_INST_LITERAL": "VOP3 SDST + Literal (96-bit): VOP3 with scalar destination and literal",

	"ENC_SOP1":          "SOP1 (32-bit): Scalar ALU operation with one source",
	"ENC_SOP2":          "SOP2 (32-bit): Scalar ALU operation with two sources",
	"ENC_SOPC":          "SOPC (32-bit): Scalar ALU comparison operation",
	"ENC_SOPK":          "SOPK (32-bit): Scalar operation with 16-bit inline constant",
	"ENC_SOPP":          "SOPP (32-bit): Scalar operation for program control",
	"SOP1_INST_LITERAL": "SOP1 + Literal (64-bit): Scalar operation with 32-bit inline constant",
	"SOP2_INST_LITERAL": "SOP2 + Literal (64-bit): Scalar operation with 32-bit inline constant",
	"SOPC_INST_LITERAL": "SOPC + Literal (64-bit): Scalar comparison with 32-bit inline constant",
	"SOPK_INST_LITERAL": "SOPK + Literal (64-bit): Scalar operation with extended constant",

	"ENC_SMEM":         "SMEM: Scalar memory operation",
	"ENC_DS":           "DS: Data share (LDS/GDS) operation",
	"ENC_MUBUF":        "MUBUF: Untyped buffer memory operation",
	"ENC_MTBUF":        "MTBUF: Typed buffer memory operation",
	"ENC_MIMG":         "MIMG: Image memory operation",
	"MIMG_NSA1":        "MIMG NSA: Non-sequential address mode for images",
	"ENC_FLAT":         "FLAT: Flat addressing (global/scratch/LDS)",
	"ENC_FLAT_SCRATCH": "FLAT Scratch: Flat addressing for scratch memory",
	"ENC_FLAT_GLOBAL":  "FLAT Global: Flat addressing for global memory",

	"ENC_VINTERP":         "VINTERP: Vector interpolation operation",
	"ENC_LDSDIR":          "LDSDIR: LDS direct read operation",
	"ENC_EXP":             "EXP: Export operation for pixel/vertex data",
	"VOPDXY":              "VOPDXY: Vector operation with partial derivatives",
	"VOPDXY_INST_LITERAL": "VOPDXY + Literal: Vector partial derivative with inline constant",
}

// EncodingDescription returns the human description of a concrete
// encoding name.
func EncodingDescription(name string) (string, bool) {
	description, ok := encodingDescriptions[name]
	return description, ok
}
