package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/milk9111/rustyfarm/debugserver"
	"github.com/milk9111/rustyfarm/levels"
)

type config struct {
	debug       bool
	level       string
	baseMonitor bool
	debugAddr   string
	saveApp     string
	seed        uint64
}

// loadConfig reads .env (parent directory first), then flags. Flags win over
// the environment.
func loadConfig() config {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("config: no .env file, using environment only")
		}
	}

	cfg := config{
		debugAddr: envOr("RUSTYFARM_DEBUG_ADDR", debugserver.DefaultAddr),
		saveApp:   envOr("RUSTYFARM_SAVE_APP", "rustyfarm"),
		seed:      envSeed("RUSTYFARM_SEED"),
	}

	flag.BoolVar(&cfg.debug, "debug", false, "enable debug mode (debug server, prefab hot reload, F3/F9 keys)")
	flag.StringVar(&cfg.level, "level", levels.Default, "level name in levels/ (basename, .json optional)")
	flag.BoolVar(&cfg.baseMonitor, "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.StringVar(&cfg.debugAddr, "debug-addr", cfg.debugAddr, "listen address of the debug server")
	flag.Parse()
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envSeed falls back to the clock so each run rolls different crops.
func envSeed(key string) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return uint64(time.Now().UnixNano())
	}
	seed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, ignoring", key, v)
		return uint64(time.Now().UnixNano())
	}
	return seed
}
