package cmd

import (
	"fmt"
	"os"

	"github.com/boopdotpng/amdgpu-lsp/arch"
	"github.com/boopdotpng/amdgpu-lsp/query"
	"github.com/boopdotpng/amdgpu-lsp/renderer"
	"github.com/urfave/cli/v2"
)

var (
	DataFlag = &cli.PathFlag{
		Name:     "data",
		Usage:    "Path to the compiled knowledge base. Default: data/isa.json or $AMDGPU_LSP_DATA",
		Required: false,
	}
	LanguageFlag = &cli.StringFlag{
		Name:     "language",
		Usage:    "Editor language identifier used to derive the architecture filter (e.g. rdna35)",
		Required: false,
	}
	ArchFlag = &cli.StringFlag{
		Name:     "arch",
		Usage:    "Explicit architecture override, takes precedence over -language (e.g. \"RDNA 3.5\")",
		Required: false,
	}
	FormatFlag = &cli.StringFlag{
		Name:        "format",
		Usage:       "format of the output. Options: json, markdown",
		Required:    false,
		DefaultText: "markdown",
	}
)

func CreateLookupCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "lookup",
		Usage:       "Resolves a token against a compiled knowledge base",
		Description: "Resolves a token against a compiled knowledge base",
		ArgsUsage:   "<token>",
		Action:      action,
		Flags: []cli.Flag{
			DataFlag,
			LanguageFlag,
			ArchFlag,
			FormatFlag,
		},
	}
}

var LookupCommand = CreateLookupCommand(Lookup)

func Lookup(ctx *cli.Context) error {
	token := ctx.Args().First()
	if token == "" {
		return fmt.Errorf("no token given")
	}

	index := query.Load(ctx.Path(DataFlag.Name))
	if info := index.Info(); info.Err != nil {
		fmt.Fprintf(os.Stderr, "%v (path: %s)\n", info.Err, info.DataPath)
	} else {
		fmt.Fprintf(os.Stderr, "Loaded %d ISA entries (%d unique names) from %s\n",
			index.Len(), index.Names(), index.Info().DataPath)
	}

	filter, _ := arch.Filter(ctx.String(LanguageFlag.Name), ctx.String(ArchFlag.Name))

	// Special registers take precedence over instructions, matching the
	// hover behavior of the editor surface.
	if register, ok := index.SpecialRegister(token); ok {
		fmt.Println(renderer.RegisterHover(register))
		return nil
	}

	result := index.Resolve(token, filter)

	var rendererInstance renderer.Renderer
	switch ctx.String(FormatFlag.Name) {
	case "json":
		rendererInstance = renderer.NewJSONRenderer()
	case "markdown", "":
		rendererInstance = renderer.NewMarkdownRenderer()
	default:
		return fmt.Errorf("invalid format: %s", ctx.String(FormatFlag.Name))
	}
	return rendererInstance.Render(&result, os.Stdout)
}
