package main

import "github.com/webcheck/backend/cmd"

func main() {
	cmd.Execute()
}
