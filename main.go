package main

import "obfuscate-logs/cmd"

func main() {
	cmd.Execute()
}
