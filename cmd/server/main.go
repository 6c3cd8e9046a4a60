package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ServEase-Innovations/payments/config"
	"github.com/ServEase-Innovations/payments/internal/database"
	"github.com/ServEase-Innovations/payments/internal/router"
	"github.com/ServEase-Innovations/payments/internal/ws"
	"github.com/ServEase-Innovations/payments/pkg/gateway"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var gw gateway.Client
	if cfg.Gateway.KeyID != "" {
		gw = gateway.NewRazorpayClient(cfg.Gateway.KeyID, cfg.Gateway.KeySecret, cfg.Gateway.Timeout)
	} else {
		log.Printf("[gateway] GATEWAY_KEY_ID not set, using in-process fake gateway")
		gw = gateway.NewFakeClient(cfg.Gateway.KeySecret)
	}

	hub := ws.NewHub()
	engine := router.Setup(cfg, db, gw, hub)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	fmt.Println("server stopped")
}
