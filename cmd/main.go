package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	vnovel "github.com/thmaillarb/vnovel-generation/src"
)

var (
	situations = flag.String("config", "", "path to the situations YAML file (overrides VN_SITUATIONS_FILE)")
	outputDir  = flag.String("out", "", "output directory for the Ren'Py project (overrides VN_OUTPUT_DIR)")
)

func main() {
	flag.Parse()

	// A missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	settings, err := vnovel.LoadSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	if *situations != "" {
		settings.SituationsFile = *situations
	}
	if *outputDir != "" {
		settings.OutputDir = *outputDir
	}

	text, err := vnovel.NewTextClient(settings)
	if err != nil {
		log.Fatal().Err(err).Msg("setting up text backend")
	}
	image, err := vnovel.NewImageClient(settings)
	if err != nil {
		log.Fatal().Err(err).Msg("setting up image backend")
	}

	pipeline := vnovel.NewPipeline(settings, text, image, log)
	if err := pipeline.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("generation failed")
	}
	log.Info().Str("dir", settings.OutputDir).Msg("visual novel generation complete")
}
