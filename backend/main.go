package main

import "learntrack/backend/cmd"

func main() {
	cmd.Execute()
}
