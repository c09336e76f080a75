package main

import "ntfsundeletetree/cmd/ntfsundeletetree/cmd"

func main() {
	cmd.Execute()
}
