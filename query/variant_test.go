package query

import "testing"

func TestSplitVariant(t *testing.T) {
	cases := []struct {
		token   string
		base    string
		variant Variant
	}{
		{"v_add_f32", "v_add_f32", VariantNative},
		{"v_add_f32_e32", "v_add_f32", VariantE32},
		{"v_add_f32_e64", "v_add_f32", VariantE64},
		{"v_add_f32_dpp", "v_add_f32", VariantDPP},
		{"v_add_f32_sdwa", "v_add_f32", VariantSDWA},
		// The combined suffix must win over its shorter components.
		{"v_add_f32_e64_dpp", "v_add_f32", VariantE64DPP},
		{"V_ADD_F32_E64_DPP", "V_ADD_F32", VariantE64DPP},
		{"s_endpgm", "s_endpgm", VariantNative},
	}
	for _, tc := range cases {
		base, variant := SplitVariant(tc.token)
		if base != tc.base || variant != tc.variant {
			t.Errorf("SplitVariant(%q) = %q, %v; expected %q, %v", tc.token, base, variant, tc.base, tc.variant)
		}
	}
}

func TestMatchEncoding(t *testing.T) {
	available := []string{
		"VOP2_INST_LITERAL",
		"ENC_VOP2",
		"ENC_VOP3",
		"VOP2_VOP_DPP8",
		"VOP2_VOP_DPP16",
		"VOP2_VOP_SDWA",
		"VOP3_VOP_DPP8",
		"VOP3_VOP_DPP16",
	}

	cases := []struct {
		variant  Variant
		expected string
	}{
		// Native skips literal encodings in favor of the bare base form.
		{VariantNative, "ENC_VOP2"},
		{VariantE32, "ENC_VOP2"},
		{VariantE64, "ENC_VOP3"},
		// Wider swizzle preferred over narrower.
		{VariantDPP, "VOP2_VOP_DPP16"},
		{VariantSDWA, "VOP2_VOP_SDWA"},
		{VariantE64DPP, "VOP3_VOP_DPP16"},
	}
	for _, tc := range cases {
		encoding, ok := MatchEncoding(available, tc.variant)
		if !ok || encoding != tc.expected {
			t.Errorf("MatchEncoding(%v) = %q, %v; expected %q", tc.variant, encoding, ok, tc.expected)
		}
	}

	if _, ok := MatchEncoding([]string{"ENC_SOP1"}, VariantDPP); ok {
		t.Errorf("no DPP encoding available, expected no match")
	}
}

func TestMatchEncodingDPPFallback(t *testing.T) {
	encoding, ok := MatchEncoding([]string{"VOP2_VOP_DPP8"}, VariantDPP)
	if !ok || encoding != "VOP2_VOP_DPP8" {
		t.Errorf("expected DPP8 fallback when no DPP16 form exists, got %q, %v", encoding, ok)
	}
}

func TestEncodingDescription(t *testing.T) {
	description, ok := EncodingDescription("ENC_VOP2")
	if !ok || description != "VOP2 (32-bit): Vector ALU operation with two sources" {
		t.Errorf("unexpected description %q, %v", description, ok)
	}
	if _, ok := EncodingDescription("ENC_BOGUS"); ok {
		t.Errorf("unknown encodings must not resolve")
	}
}

func TestVariantLabel(t *testing.T) {
	if VariantE64.Label() != "64-bit encoding" {
		t.Errorf("unexpected label %q", VariantE64.Label())
	}
	if VariantNative.Label() != "native encoding" {
		t.Errorf("unexpected label %q", VariantNative.Label())
	}
}
