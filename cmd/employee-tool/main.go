package main

import "github.com/IamHazels/employee-tool/internal/cli"

func main() {
	cli.Execute()
}
