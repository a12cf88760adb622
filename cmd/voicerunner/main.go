package main

import "github.com/voicerunner/voicerunner/cmd/voicerunner/cmd"

func main() {
	cmd.Execute()
}
