// cmd/kurukshetra/main.go
package main

import (
	"github.com/RNAdvani/kurukshetra/internal/commands"
)

// main starts the kurukshetra CLI application by delegating to the
// cobra root command defined in the commands package. It does not
// take any arguments and does not return a value.
func main() {
	commands.Execute()
}
