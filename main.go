package main

import "github.com/user/docaudit/cmd"

func main() {
	cmd.Execute()
}
