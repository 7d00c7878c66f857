package main

import (
	_ "embed"

	"github.com/haierkeys/dev-knowledge-base/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
