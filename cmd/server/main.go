package main

import (
	"agentboard/internal/config"
	"agentboard/internal/server"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("Server initialization failed: %v", err)
	}

	s.Run()
}
