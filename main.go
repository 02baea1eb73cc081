package main

import "github.com/Rubixdarcy/minesweeper/cmd"

func main() {
	cmd.Execute()
}
