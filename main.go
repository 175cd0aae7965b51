package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pstruik/phraser/internal/app"
	"github.com/pstruik/phraser/internal/config"
)

func main() {
	treeDir := flag.String("tree", "", "Override the phrase tree directory")
	themeName := flag.String("theme", "", "Override the color theme")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *treeDir != "" {
		cfg.TreeDir = *treeDir
	}
	if *themeName != "" {
		cfg.Theme = *themeName
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.Create(filepath.Join(cfg.DataDir(), "phraser.log"))
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	application, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}
