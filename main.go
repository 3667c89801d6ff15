package main

import "github.com/sheetlord/coep.ultimatett.fyfirstsem2025/cmd/ultimatett/commands"

func main() {
	commands.Execute()
}
