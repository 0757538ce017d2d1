package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/danilovkiri/dk_go_link_resolver/internal/api/rest"
	"github.com/danilovkiri/dk_go_link_resolver/internal/config"
	"github.com/danilovkiri/dk_go_link_resolver/internal/maintenance"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage/inmemory"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage/inpsql"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// add a waiting group
	wg := &sync.WaitGroup{}
	// get configuration
	cfg, err := config.NewDefaultConfiguration()
	if err != nil {
		log.Fatal(err)
	}
	err = cfg.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	// initialize storage, switch between "inmemory" and "inpsql" modules
	var storageInit storage.Storage
	switch cfg.StorageConfig.DatabaseDSN {
	case "":
		storageInit = inmemory.InitStorage()
	default:
		// set number of wg members to 1 (this will be the connection closure goroutine)
		wg.Add(1)
		storageInit, err = inpsql.InitStorage(ctx, wg, cfg.StorageConfig)
		if err != nil {
			log.Fatal(err)
		}
	}
	// start the maintenance sweeper
	maintenanceCfg := cfg.MaintenanceConfig
	sweeper, err := maintenance.InitSweeper(storageInit, maintenanceCfg.MetricsRetentionDays, maintenanceCfg.LookaheadDays, maintenanceCfg.LinkRetentionDays, maintenanceCfg.CollectionRetentionDays, nil)
	if err != nil {
		log.Fatal(err)
	}
	wg.Add(1)
	go sweeper.Run(ctx, wg, maintenanceCfg.SweepInterval)
	// initialize server
	server, err := rest.InitServer(cfg, storageInit)
	if err != nil {
		log.Fatal(err)
	}
	// set a listener for os.Signal
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		log.Print("Server shutdown attempted")
		ctxTO, cancelTO := context.WithTimeout(ctx, 5*time.Second)
		defer cancelTO()
		if err := server.Shutdown(ctxTO); err != nil {
			log.Fatal("Server shutdown failed:", err)
		}
		cancel()
	}()
	// start up the server
	log.Print("Server start attempted")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	// wait for the sweeper and storage goroutines to finish before exiting
	wg.Wait()
	log.Print("Server shutdown succeeded")
}
