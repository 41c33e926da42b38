package main

import (
	"os"
)

// @title       Dropout Risk Service
// @description Scores students for dropout risk and tracks the alerts raised for their mentors.
// @version     1.0
// @host        localhost:8080
// @schemes     http
// @BasePath    /api/v1
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
