package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/readme-cards/internal/app"
	"github.com/MikhailRaia/readme-cards/internal/config"
	"github.com/MikhailRaia/readme-cards/internal/logger"
)

var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

func writeHeapProfile(path string) {
	f, err := os.Create(path)
	if err == nil {
		runtime.GC()
		pprof.WriteHeapProfile(f)
		_ = f.Close()
	}
}

func main() {
	cfg := config.NewConfig()

	logger.InitLogger(cfg.LogLevel)

	application := app.NewApp(cfg)
	err := application.Run()

	// Run returns once the server has shut down.
	if *memprofile != "" {
		writeHeapProfile(*memprofile)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Error running application")
	}
}
