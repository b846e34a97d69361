package main

import "github.com/kbukum/tripcost/cli"

func main() {
	cli.Execute()
}
