package main

import (
	"context"
	"log"
	"os"

	"github.com/boopdotpng/amdgpu-lsp/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = os.Args[0]
	app.Usage = "AMD GPU ISA knowledge base compiler and query tool"
	app.Description = "AMD GPU ISA knowledge base compiler and query tool"
	app.Commands = []*cli.Command{
		cmd.CompileCommand,
		cmd.LookupCommand,
	}
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
