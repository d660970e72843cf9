package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/boopdotpng/amdgpu-lsp/compiler"
	"github.com/boopdotpng/amdgpu-lsp/config"
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
)

var (
	ConfigFlag = &cli.PathFlag{
		Name:     "config",
		Usage:    "Path to a YAML compile config (inputs, output)",
		Required: false,
	}
	OutputFlag = &cli.PathFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "Output path for the compiled knowledge base. Default: data/isa.json",
		Required: false,
	}
	DumpFlag = &cli.BoolFlag{
		Name:     "dump",
		Usage:    "dump the compiled knowledge base to stderr for debugging",
		Required: false,
		Value:    false,
	}
)

func CreateCompileCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "compile",
		Usage:       "Compiles vendor ISA XML documents into a knowledge base",
		Description: "Compiles vendor ISA XML documents into a knowledge base",
		ArgsUsage:   "[xml file or directory...]",
		Action:      action,
		Flags: []cli.Flag{
			ConfigFlag,
			OutputFlag,
			DumpFlag,
		},
	}
}

var CompileCommand = CreateCompileCommand(Compile)

func Compile(ctx *cli.Context) error {
	inputs := ctx.Args().Slice()
	output := ctx.Path(OutputFlag.Name)

	if configPath := ctx.Path(ConfigFlag.Name); configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if len(inputs) == 0 {
			inputs = cfg.Inputs
		}
		if output == "" {
			output = cfg.Output
		}
	}
	if len(inputs) == 0 {
		inputs = []string{"amd_gpu_xmls"}
	}
	if output == "" {
		output = "data/isa.json"
	}

	documents, err := collectXMLFiles(inputs)
	if err != nil {
		return fmt.Errorf("error collecting documents: %w", err)
	}
	if len(documents) == 0 {
		return fmt.Errorf("no XML documents found under %v", inputs)
	}

	comp := compiler.New()
	for _, document := range documents {
		if err := comp.AddFile(document); err != nil {
			return fmt.Errorf("compilation failed: %w", err)
		}
	}
	doc := comp.Document()

	if ctx.Bool(DumpFlag.Name) {
		spew.Fdump(os.Stderr, doc)
	}

	return writeDocument(doc, output)
}

// collectXMLFiles expands directories into their .xml entries; explicit
// file arguments are taken as-is.
func collectXMLFiles(inputs []string) ([]string, error) {
	var documents []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("unable to stat input %s: %w", input, err)
		}
		if !info.IsDir() {
			documents = append(documents, input)
			continue
		}
		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, fmt.Errorf("unable to read directory %s: %w", input, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && filepath.Ext(entry.Name()) == ".xml" {
				documents = append(documents, filepath.Join(input, entry.Name()))
			}
		}
	}
	return documents, nil
}

// writeDocument serializes the knowledge base, creating parent
// directories as needed.
func writeDocument(doc interface{}, outputPath string) error {
	contents, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize knowledge base: %w", err)
	}
	if parent := filepath.Dir(outputPath); parent != "." && parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, append(contents, '\n'), 0o600); err != nil {
		return fmt.Errorf("unable to write knowledge base: %w", err)
	}
	return nil
}
