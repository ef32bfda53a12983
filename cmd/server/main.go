package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/stevear22/FreeField/internal/config"
	"github.com/stevear22/FreeField/internal/ops"
	"github.com/stevear22/FreeField/internal/serverapp"
)

func main() {
	configPath := flag.String("config", "freefield.yml", "path to the configuration file")
	backupPath := flag.String("backup", "", "write a data directory archive to this path and exit")
	restorePath := flag.String("restore", "", "restore the data directory from this archive and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	switch {
	case *backupPath != "":
		if err := ops.BackupDataDir(cfg.Data.Dir, *backupPath); err != nil {
			log.Fatalf("backup: %v", err)
		}
		log.Printf("backed up %s to %s", cfg.Data.Dir, *backupPath)
		return
	case *restorePath != "":
		if err := ops.RestoreDataDir(*restorePath, cfg.Data.Dir); err != nil {
			log.Fatalf("restore: %v", err)
		}
		log.Printf("restored %s from %s", cfg.Data.Dir, *restorePath)
		return
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on %s", cfg.Site.Listen)
	log.Fatal(http.ListenAndServe(cfg.Site.Listen, handler))
}
