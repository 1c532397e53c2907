package main

import (
	"log"
	"os"

	"jobguard/cmd"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic recovered: %v", r)
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
