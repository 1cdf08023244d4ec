package main

import (
	"github.com/starforge/ionhydro/cmd/ionhydro"
)

func main() {
	cmd.Execute()
}
