package main

import "printshop/internal/cmd"

func main() {
	cmd.Execute()
}
