package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"pet-community-client/internal/devbackend"
	"pet-community-client/internal/platform/logger"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := devbackend.NewRouter(devbackend.Options{Log: logger.NewFromEnv()})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("starting dev backend on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
