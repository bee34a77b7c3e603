package main

import "recalc/cmd"

func main() {
	cmd.Execute()
}
