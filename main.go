package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/config"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/core"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/persist"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// open persistence and run migrations
	p, err := persist.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer p.Close()

	// build the core and seed it from disk
	c := core.New(core.Options{
		SessionTTL: time.Duration(cfg.Session.TTLHours) * time.Hour,
		BcryptCost: cfg.Security.BcryptCost,
		Notifier:   p,
	})

	identities, listings, err := p.LoadAll()
	if err != nil {
		log.Fatalf("load state: %v", err)
	}
	c.Seed(identities, listings)
	log.Printf("loaded %d identities, %d listings", len(identities), len(listings))

	// write-behind persistence
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	// setup router
	r := router.SetupRouter(cfg, c)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
