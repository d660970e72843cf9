package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/boopdotpng/amdgpu-lsp/isa"
	"github.com/stretchr/testify/assert"
)

func testDocument() isa.Document {
	return isa.Document{
		Instructions: []isa.Instruction{
			{
				Name:               "v_add_f32",
				Architectures:      []string{"rdna3"},
				Description:        "Add two values.",
				Args:               []string{"vdst", "src0", "src1"},
				ArgTypes:           []string{"register", "register_or_inline", "register_or_inline"},
				AvailableEncodings: []string{"ENC_VOP2", "ENC_VOP3"},
			},
			{
				Name:          "v_add_f32",
				Architectures: []string{"rdna4"},
				Description:   "Add two values (rdna4 shape).",
			},
			{
				Name:          "v_mov_b32",
				Architectures: []string{"rdna3", "rdna4"},
			},
			{
				Name:          "s_endpgm",
				Architectures: []string{"cdna3"},
			},
		},
		SpecialRegisters: isa.RegisterSet{
			Singles: []isa.SpecialRegister{{Name: "vcc", Description: "Vector condition code."}},
			Ranges:  []isa.SpecialRegisterRange{{Prefix: "ttmp", Start: 0, Count: 16, Description: "Trap temp."}},
		},
	}
}

func TestResolve(t *testing.T) {
	index := FromDocument(testDocument(), "test")

	result := index.Resolve("v_add_f32_e32", "rdna3")
	assert.Equal(t, Found, result.Outcome)
	assert.Equal(t, VariantE32, result.Variant)
	assert.Equal(t, []string{"vdst", "src0", "src1"}, result.Entry.Args)

	// A versioned filter that no record carries is filtered out, which is
	// distinct from not found.
	result = index.Resolve("v_add_f32_e32", "rdna5")
	assert.Equal(t, FilteredOut, result.Outcome)

	result = index.Resolve("v_sub_f32_e32", "rdna3")
	assert.Equal(t, NotFound, result.Outcome)

	// Filters select among same-name records.
	result = index.Resolve("v_add_f32", "rdna4")
	assert.Equal(t, Found, result.Outcome)
	assert.Equal(t, "Add two values (rdna4 shape).", result.Entry.Description)

	// Family-only filter matches any version of the family.
	result = index.Resolve("v_add_f32", "rdna")
	assert.Equal(t, Found, result.Outcome)
	assert.Equal(t, []string{"rdna3"}, result.Entry.Architectures)

	// No filter: first record in insertion order wins, deterministically.
	result = index.Resolve("V_ADD_F32", "")
	assert.Equal(t, Found, result.Outcome)
	assert.Equal(t, "Add two values.", result.Entry.Description)
}

func TestSpecialRegisterLookup(t *testing.T) {
	index := FromDocument(testDocument(), "test")

	register, ok := index.SpecialRegister("VCC")
	assert.True(t, ok)
	assert.Equal(t, "Vector condition code.", register.Description)

	// Ranges are expanded once at load; lookups never see the compressed
	// form.
	register, ok = index.SpecialRegister("ttmp15")
	assert.True(t, ok)
	assert.Equal(t, "Trap temp.", register.Description)

	_, ok = index.SpecialRegister("ttmp16")
	assert.False(t, ok)

	assert.Equal(t, 17, len(index.SpecialRegisters()))
}

func TestComplete(t *testing.T) {
	index := FromDocument(testDocument(), "test")

	matches := index.Complete("v_")
	assert.Equal(t, 2, len(matches))
	assert.Equal(t, "v_add_f32", matches[0].Name)
	assert.Equal(t, "v_mov_b32", matches[1].Name)

	assert.Equal(t, 0, len(index.Complete("x_")))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "isa.json")
	contents := `{
		"instructions": [
			{"name": "v_add_f32", "architectures": ["rdna3"], "args": [], "arg_types": [], "arg_data_types": [], "available_encodings": []}
		],
		"special_registers": [{"name": "vcc", "description": "Vector condition code."}]
	}`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	index := Load(path)
	assert.NoError(t, index.Info().Err)
	assert.Equal(t, 1, index.Len())
	assert.Equal(t, 1, index.Names())
	result := index.Resolve("v_add_f32", "")
	assert.Equal(t, Found, result.Outcome)
}

// Load failures degrade to an empty, query-safe index; they are
// diagnostics, not fatal faults.
func TestLoadFailure(t *testing.T) {
	index := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, index.Info().Err)
	assert.Equal(t, 0, index.Len())
	result := index.Resolve("v_add_f32", "")
	assert.Equal(t, NotFound, result.Outcome)

	malformed := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(malformed, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	index = Load(malformed)
	assert.Error(t, index.Info().Err)
	assert.Equal(t, 0, index.Len())
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.json")
	contents := `{"instructions": [{"name": "s_nop", "architectures": ["rdna3"], "args": [], "arg_types": [], "arg_data_types": [], "available_encodings": []}], "special_registers": []}`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(DataPathEnv, path)

	index := Load("")
	assert.NoError(t, index.Info().Err)
	assert.Equal(t, path, index.Info().DataPath)
	assert.Equal(t, Found, index.Resolve("s_nop", "").Outcome)
}
