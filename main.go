package main

import "sheetc/cmd"

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
