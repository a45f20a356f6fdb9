package main

import (
	"context"
	"fmt"
	"log"

	"github.com/WillBBHM/ProgrammationWeb/pkg/config"
	"github.com/WillBBHM/ProgrammationWeb/pkg/db"
	"github.com/WillBBHM/ProgrammationWeb/pkg/obs"
	"github.com/WillBBHM/ProgrammationWeb/services/boat-service/internal/repository"
	"github.com/WillBBHM/ProgrammationWeb/services/boat-service/internal/service"
	transport "github.com/WillBBHM/ProgrammationWeb/services/boat-service/internal/transport/http"
)

type boatCfg struct {
	config.DB
	Port int `envconfig:"PORT" default:"3000"`
}

func main() {
	var cfg boatCfg
	if err := config.Load(&cfg); err != nil {
		log.Fatal(err)
	}

	shutdown := obs.InitTracer("boat-service")
	defer func() { _ = shutdown(context.Background()) }()

	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}

	repo := repository.NewBoatRepo(gdb)
	if err := repo.Migrate(); err != nil {
		log.Fatal(err)
	}

	srv := transport.NewServer(service.NewBoatSvc(repo), gdb)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("boat-service listening on %s", addr)
	log.Fatal(srv.Router().Run(addr))
}
