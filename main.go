package main

import (
	"github.com/jacobarthurs/pgseq/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// PGSEQ_* settings may come from a .env file; a missing file is fine.
	_ = godotenv.Load()

	cmd.Execute()
}
