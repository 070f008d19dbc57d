package main

import (
	"github.com/joho/godotenv"

	"github.com/motuslabs/rehab/api"
)

func main() {
	// Local development convenience; deployed environments set real env vars.
	_ = godotenv.Load()

	api.MainLoop()
}
