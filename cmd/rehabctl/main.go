package main

import (
	"github.com/joho/godotenv"

	"github.com/motuslabs/rehab/cmd/rehabctl/command"
)

func main() {
	_ = godotenv.Load()

	command.Execute()
}
