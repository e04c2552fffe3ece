package main

import "gift-registry/cmd"

func main() {
	cmd.Execute()
}
