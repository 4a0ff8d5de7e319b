package main

import (
	"context"

	"github.com/shandysiswandi/gocadastro/internal/app"
)

// @title           Gocadastro API
// @version         1.0
// @description     Gocadastro validates and stores user registrations.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
func main() {
	application := app.New()
	<-application.Start()
	application.Stop(context.Background()) // bounded by app.server.shutdown_timeout_seconds
}
