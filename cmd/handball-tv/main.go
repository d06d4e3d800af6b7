package main

import "github.com/pfrederiksen/handball-tv/internal/cli"

func main() {
	cli.Execute()
}
