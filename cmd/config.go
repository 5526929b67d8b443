package main

import "time"

type Config struct {
	BadgerFilepath   string        `env:"BADGER_FILEPATH,required=true"`
	StaleThreshold   time.Duration `env:"STALE_THRESHOLD,default=10s"`
	EvictionInterval time.Duration `env:"EVICTION_INTERVAL,default=15s"`
	RestartInterval  time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	StoreTimeout     time.Duration `env:"STORE_TIMEOUT,default=5s"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO"`
	Host             string        `env:"HOST,default=localhost"`
	Port             int           `env:"PORT,default=8080"`
}
