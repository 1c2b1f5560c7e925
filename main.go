package main

import "github.com/luthersystems/smodr/cmd"

func main() {
	cmd.Execute()
}
