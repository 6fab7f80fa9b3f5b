package main

import (
	"os"
	_ "time/tzdata" // Asia/Kolkata on hosts without zoneinfo
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
