package main

import (
	"log"
	"os"

	"github.com/rberaud/xsd2js/jsgen"
)

func main() {
	log.SetFlags(0)
	var cfg jsgen.Config
	cfg.Option(jsgen.DefaultOptions...)
	cfg.Option(jsgen.LogOutput(log.New(os.Stderr, "", 0)))

	if err := cfg.Generate(os.Args[1:]...); err != nil {
		log.Fatal(err)
	}
}
