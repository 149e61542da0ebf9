package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-api/pkg/container"
)

// @title        Library API
// @version      1.0
// @description  Authors and books with validation and referential integrity.
// @BasePath     /
func main() {
	appContainer, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer appContainer.Cleanup()

	if !appContainer.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := Serve(appContainer); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}
}
