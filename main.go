package main

import "github.com/diogo/gptmecli/internal/commands"

func main() {
	commands.Execute()
}
