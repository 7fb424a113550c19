package main

import (
	"kb-server/confs"
	"kb-server/db"
	"kb-server/logging"
	"kb-server/server"
)

func main() {
	cfg, err := confs.Load()
	if err != nil {
		logging.New("development").Fatalf("error loading config: %v", err)
	}

	log := logging.New(cfg.Environment)

	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	srv := server.New(cfg, database, log)
	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
