package main

import (
	"log"

	"github.com/campuslink/club-governance/cmd/engine"
	"github.com/campuslink/club-governance/internal/adapters/config"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	e, err := engine.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	e.Start()
}
