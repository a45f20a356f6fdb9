package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/WillBBHM/ProgrammationWeb/pkg/config"
	"github.com/WillBBHM/ProgrammationWeb/pkg/db"
	"github.com/WillBBHM/ProgrammationWeb/pkg/obs"
	"github.com/WillBBHM/ProgrammationWeb/services/auth-service/internal/repository"
	"github.com/WillBBHM/ProgrammationWeb/services/auth-service/internal/service"
	transport "github.com/WillBBHM/ProgrammationWeb/services/auth-service/internal/transport/http"
)

type authCfg struct {
	config.DB
	Port            int    `envconfig:"PORT" default:"3003"`
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin    int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	RefreshExpireHr int    `envconfig:"REFRESH_EXPIRE_HR" default:"720"`
}

func main() {
	var cfg authCfg
	if err := config.Load(&cfg); err != nil {
		log.Fatal(err)
	}

	shutdown := obs.InitTracer("auth-service")
	defer func() { _ = shutdown(context.Background()) }()

	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}

	repo := repository.NewUserRepo(gdb)
	if err := repo.Migrate(); err != nil {
		log.Fatal(err)
	}

	svc := service.NewAuthSvc(repo,
		time.Duration(cfg.JWTExpireMin)*time.Minute,
		time.Duration(cfg.RefreshExpireHr)*time.Hour)
	srv := transport.NewServer(svc, gdb)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("auth-service listening on %s", addr)
	log.Fatal(srv.Router().Run(addr))
}
