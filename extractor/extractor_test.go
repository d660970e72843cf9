package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDocument = `<?xml version="1.0"?>
<ISA>
  <Architecture>
    <ArchitectureName>AMD RDNA 3.5</ArchitectureName>
  </Architecture>
  <Instructions>
    <Instruction>
      <InstructionName>V_ADD_F32</InstructionName>
      <Description>Add two single-precision values.</Description>
      <AliasedInstructionNames>
        <InstructionName>V_ADD_F32_ALIAS</InstructionName>
      </AliasedInstructionNames>
      <InstructionEncodings>
        <InstructionEncoding>
          <EncodingName>ENC_VOP2</EncodingName>
          <Operands>
            <Operand Input="false" Output="true" IsImplicit="false" Order="0">
              <FieldName>vdst</FieldName>
              <OperandType>OPR_VGPR</OperandType>
              <DataFormatName>FMT_NUM_F32</DataFormatName>
              <OperandSize>32</OperandSize>
            </Operand>
            <Operand Input="true" Output="false" IsImplicit="false" Order="2">
              <FieldName>src1</FieldName>
              <OperandType>OPR_VGPR</OperandType>
              <DataFormatName>FMT_NUM_F32</DataFormatName>
            </Operand>
            <Operand Input="true" Output="false" IsImplicit="false" Order="1">
              <FieldName>src0</FieldName>
              <OperandType>OPR_SRC_VGPR_OR_INLINE</OperandType>
              <DataFormatName>FMT_NUM_F32</DataFormatName>
            </Operand>
            <Operand Input="true" Output="false" IsImplicit="true">
              <FieldName>exec</FieldName>
              <OperandType>OPR_EXEC</OperandType>
            </Operand>
          </Operands>
        </InstructionEncoding>
        <InstructionEncoding>
          <EncodingName>ENC_VOP3</EncodingName>
          <Operands>
            <Operand Input="true" Output="false" Order="0">
              <OperandType>OPR_VGPR</OperandType>
            </Operand>
          </Operands>
        </InstructionEncoding>
        <InstructionEncoding>
          <EncodingName>ENC_VOP2</EncodingName>
        </InstructionEncoding>
      </InstructionEncodings>
    </Instruction>
    <Instruction>
      <InstructionName>S_NOP</InstructionName>
    </Instruction>
  </Instructions>
  <Operands>
    <OperandPredefinedValues>
      <PredefinedValue>
        <Name>vcc</Name>
        <Description>Vector condition code.</Description>
        <Value>106</Value>
      </PredefinedValue>
      <PredefinedValue>
        <Name>ttmp0</Name>
        <Description>Trap temporary register.</Description>
      </PredefinedValue>
      <PredefinedValue>
        <Description>No name, dropped.</Description>
      </PredefinedValue>
    </OperandPredefinedValues>
  </Operands>
</ISA>
`

func writeTempDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFile(t *testing.T) {
	path := writeTempDocument(t, "rdna35_sample.xml", sampleDocument)

	architecture, instructions, err := File(path)
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	assert.Equal(t, "AMD RDNA 3.5", architecture)
	assert.Equal(t, len(instructions), 2)

	ins := instructions[0]
	// The aliased name must not overwrite the canonical one.
	assert.Equal(t, "V_ADD_F32", ins.Name)
	assert.Equal(t, "Add two single-precision values.", ins.Description)
	assert.Equal(t, []string{"AMD RDNA 3.5"}, ins.Architectures)

	// Args come from the first encoding only, sorted by declared order,
	// implicit operands elided.
	assert.Equal(t, []string{"vdst", "src0", "src1"}, ins.Args)
	assert.Equal(t, []string{"register", "register_or_inline", "register"}, ins.ArgTypes)
	assert.Equal(t, []string{"FMT_NUM_F32", "FMT_NUM_F32", "FMT_NUM_F32"}, ins.ArgDataTypes)

	// Encoding names are deduplicated and sorted.
	assert.Equal(t, []string{"ENC_VOP2", "ENC_VOP3"}, ins.AvailableEncodings)

	// An instruction with no encodings still yields empty (not nil) lists.
	assert.Equal(t, "S_NOP", instructions[1].Name)
	assert.Equal(t, []string{}, instructions[1].Args)
	assert.Equal(t, []string{}, instructions[1].ArgTypes)
}

func TestFileMalformed(t *testing.T) {
	path := writeTempDocument(t, "broken.xml", "<ISA><Instruction></ISA>")
	_, _, err := File(path)
	assert.Error(t, err)
}

func TestSpecialRegisters(t *testing.T) {
	path := writeTempDocument(t, "rdna35_sample.xml", sampleDocument)

	registers, err := SpecialRegisters(path)
	if err != nil {
		t.Fatalf("SpecialRegisters failed: %v", err)
	}
	assert.Equal(t, len(registers), 2)
	assert.Equal(t, "vcc", registers[0].Name)
	assert.Equal(t, "Vector condition code.", registers[0].Description)
	assert.Equal(t, "ttmp0", registers[1].Name)
}
