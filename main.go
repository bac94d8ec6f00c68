/*
Copyright © 2025 NoteWell Authors
*/
package main

import "github.com/notewell/notewell/cmd"

func main() {
	cmd.Execute()
}
