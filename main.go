package main

import "github.com/papapumpkin/scripturesteps/cmd"

func main() {
	cmd.Execute()
}
