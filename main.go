package main

import "brat/cmd"

func main() {
	cmd.Execute()
}
