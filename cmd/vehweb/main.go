package main

import (
	"github.com/momeni/vehicles-api/cmd/vehweb/command"
)

func main() {
	command.Execute()
}
