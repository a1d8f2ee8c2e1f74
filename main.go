package main

import "github.com/tessro/trackseek/internal/cli"

func main() {
	cli.Execute()
}
