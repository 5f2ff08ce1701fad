package main

import (
	"os"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func defaultKeyPath() string {
	return env("SWAPCLI_PRIV_KEY", os.Getenv("HOME")+"/.swapd.priv.key")
}

func defaultTMAddr() string {
	return env("SWAPCLI_TM_ADDR", "http://localhost:26657")
}
