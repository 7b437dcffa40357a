package main

import (
	"github.com/turkeydev/gamesbot/internal/cli"
)

func main() {
	cli.Execute()
}
