package main

import "github.com/stackabletech/mergebom/cmd"

func main() {
	cmd.Execute()
}
