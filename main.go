package main

import (
	"log"

	"stock-scoring/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("could not start application: %v", err)
	}
}
