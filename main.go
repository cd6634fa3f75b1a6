package main

import "gemini-relay/cmd"

func main() {
	cmd.Execute()
}
