package main

import (
	"tangent/cmd/tangent/cmd"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	cmd.Execute()
}
