package main

import (
	"github.com/pokerdeck/core/internal/app"
	"github.com/pokerdeck/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
