package main

import "shariah_screener/cmd/screener/cmd"

func main() {
	cmd.Execute()
}
