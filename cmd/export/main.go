package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"

	"github.com/woozymasta/geocoord/internal/config"
	"github.com/woozymasta/geocoord/internal/device"
	"github.com/woozymasta/geocoord/internal/logger"
	"github.com/woozymasta/geocoord/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile      string `short:"c" long:"config"           env:"CONFIG_FILE"  description:"Path to configuration file" default:"config.yaml"`
	Output          string `short:"o" long:"out"              env:"EXPORT_PATH"  description:"GeoJSON output path (overrides export.path)"`
	IncludeInactive bool   `short:"i" long:"include-inactive" description:"Also export devices marked inactive"`
	Force           bool   `short:"f" long:"force"            description:"Force overwrite of existing files"`
}

func main() {
	envErr := godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn().Err(envErr).Msg("Failed to read .env file")
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	reg, err := device.NewStaticRegistry(cfg.Devices)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid device list")
	}

	dest := cfg.Export.Path
	if opts.Output != "" {
		dest = opts.Output
	}
	includeInactive := cfg.Export.IncludeInactive || opts.IncludeInactive

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().
		Int("devices_total", len(cfg.Devices)).
		Str("dest", dest).
		Bool("include_inactive", includeInactive).
		Msg("Starting export")

	if err := processor.ExportDevices(ctx, reg, cfg.Frame(), dest, includeInactive, opts.Force); err != nil {
		log.Fatal().Err(err).Msg("Failed to export devices")
	}

	log.Info().Msg("Export finished successfully")
}
