package main

import "github.com/josephgoksu/dayplan/cmd"

func main() {
	cmd.Execute()
}
