package main

import "kalimba-tab/cmd"

func main() {
	cmd.Execute()
}
