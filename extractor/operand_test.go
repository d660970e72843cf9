package extractor

import "testing"

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"OPR_SIMM16":             KindImmediate,
		"OPR_SIMM32":             KindImmediate,
		"OPR_SMEM_OFFSET":        KindImmediate,
		"OPR_DELAY":              KindImmediate,
		"OPR_LABEL":              KindLabel,
		"OPR_DSMEM":              KindMemory,
		"OPR_FLAT_SCRATCH":       KindMemory,
		"OPR_VGPR":               KindRegister,
		"OPR_SREG":               KindRegister,
		"OPR_PC":                 KindRegister,
		"OPR_TGT":                KindRegister,
		"OPR_SRC_VGPR_OR_INLINE": KindRegisterOrInline,
		"OPR_SENDMSG":            KindSpecial,
		"OPR_WAITCNT":            KindSpecial,
		"OPR_HWREG":              KindSpecial,
		"OPR_CLAUSE":             KindSpecial,
		"OPR_SOMETHING_NEW":      KindUnknown,
		"":                       KindUnknown,
	}
	for tag, expected := range cases {
		if got := classify(tag); got != expected {
			t.Errorf("classify(%q) = %q, expected %q", tag, got, expected)
		}
	}
}

func TestBuildArgsOrderAndLabels(t *testing.T) {
	encodings := []instructionEncoding{
		{
			name: "ENC_VOP2",
			operands: []operand{
				{fieldName: "src0", typeTag: "OPR_SRC_VGPR_OR_INLINE", order: 1},
				{typeTag: "OPR_SIMM16", order: -1}, // no declared order, sorts last
				{fieldName: "vdst", typeTag: "OPR_VGPR", dataFormat: "FMT_NUM_F32", order: 0},
				{fieldName: "exec", typeTag: "OPR_EXEC", implicit: true, order: 2},
				{order: 3}, // neither field name nor type tag
			},
		},
		{
			name:     "ENC_VOP3",
			operands: []operand{{fieldName: "ignored", typeTag: "OPR_VGPR", order: 0}},
		},
	}

	args, argTypes, argDataTypes := buildArgs(encodings)

	expectedArgs := []string{"vdst", "src0", "operand", "OPR_SIMM16"}
	expectedTypes := []string{KindRegister, KindRegisterOrInline, KindUnknown, KindImmediate}
	expectedData := []string{"FMT_NUM_F32", KindUnknown, KindUnknown, KindUnknown}
	for i := range expectedArgs {
		if args[i] != expectedArgs[i] {
			t.Errorf("args[%d] = %q, expected %q", i, args[i], expectedArgs[i])
		}
		if argTypes[i] != expectedTypes[i] {
			t.Errorf("argTypes[%d] = %q, expected %q", i, argTypes[i], expectedTypes[i])
		}
		if argDataTypes[i] != expectedData[i] {
			t.Errorf("argDataTypes[%d] = %q, expected %q", i, argDataTypes[i], expectedData[i])
		}
	}
	if len(args) != 4 {
		t.Errorf("expected implicit operand elided, got %d args", len(args))
	}
}

func TestBuildArgsNoEncodings(t *testing.T) {
	args, argTypes, argDataTypes := buildArgs(nil)
	if args == nil || argTypes == nil || argDataTypes == nil {
		t.Errorf("expected empty non-nil lists")
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildArgsStableForMissingOrder(t *testing.T) {
	encodings := []instructionEncoding{{
		operands: []operand{
			{fieldName: "first", typeTag: "OPR_VGPR", order: -1},
			{fieldName: "second", typeTag: "OPR_VGPR", order: -1},
		},
	}}
	args, _, _ := buildArgs(encodings)
	if args[0] != "first" || args[1] != "second" {
		t.Errorf("operands without order must keep declaration order, got %v", args)
	}
}
