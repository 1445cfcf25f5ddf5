package server

import (
	"net/http"

	"github.com/woozymasta/geocoord/internal/config"
	"github.com/woozymasta/geocoord/internal/device"
	"github.com/woozymasta/geocoord/internal/geo"
	"github.com/woozymasta/geocoord/internal/metrics"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config   *config.Config
	Registry device.Registry
	Metrics  *metrics.Collector
	Frame    geo.SceneFrame
}

// NewServerContext initializes the context from the loaded configuration.
// The device registry is built from the configured devices.
func NewServerContext(cfg *config.Config, m *metrics.Collector) (*ServerContext, error) {
	log.Info().Int("config_devices_count", len(cfg.Devices)).Msg("Initializing server context")

	reg, err := device.NewStaticRegistry(cfg.Devices)
	if err != nil {
		return nil, err
	}

	frame := cfg.Frame()
	log.Debug().
		Float64("origin_lat", frame.OriginLatitude).
		Float64("origin_lon", frame.OriginLongitude).
		Float64("lat_per_unit_y", frame.LatitudePerUnitY).
		Float64("lon_per_unit_x", frame.LongitudePerUnitX).
		Msg("Scene frame configured")

	for _, d := range cfg.Devices {
		if _, err := device.Locate(frame, d); err != nil {
			log.Warn().
				Err(err).
				Str("device", d.Name).
				Msg("Device position is outside the geographic domain")
		}
	}

	log.Info().Msg("Server context initialized successfully")

	return &ServerContext{
		Config:   cfg,
		Registry: reg,
		Metrics:  m,
		Frame:    frame,
	}, nil
}

// Routes returns the API handler wrapped in the request logger.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/coordinates/geo-to-cartesian", handleConversion(s, "geo-to-cartesian", geo.GeoToCartesian))
	mux.HandleFunc("POST /api/coordinates/cartesian-to-geo", handleConversion(s, "cartesian-to-geo", geo.CartesianToGeo))
	mux.HandleFunc("POST /api/coordinates/geo-to-ecef", handleConversion(s, "geo-to-ecef", geo.GeoToECEF))
	mux.HandleFunc("POST /api/coordinates/ecef-to-geo", handleConversion(s, "ecef-to-geo", geo.ECEFToGeo))
	mux.HandleFunc("POST /api/coordinates/bearing-distance", handleConversion(s, "bearing-distance", bearingDistance))
	mux.HandleFunc("POST /api/coordinates/destination", handleConversion(s, "destination", destinationPoint))
	mux.HandleFunc("POST /api/coordinates/geo-to-utm", handleConversion(s, "geo-to-utm", geo.GeoToUTM))
	mux.HandleFunc("POST /api/coordinates/utm-to-geo", handleConversion(s, "utm-to-geo", utmToGeo))
	mux.HandleFunc("POST /api/coordinates/scene-to-geo", handleConversion(s, "scene-to-geo", s.sceneToGeo))

	mux.HandleFunc("GET /api/devices", s.HandleDevicesList)
	mux.HandleFunc("GET /api/devices/{id}", s.HandleDevice)
	mux.HandleFunc("GET /api/devices.geojson", s.HandleDevicesGeoJSON)

	mux.HandleFunc("GET /healthz", s.HandleHealth)
	mux.Handle("GET /metrics", s.Metrics.Handler())

	return RequestLogger(mux, s.Metrics)
}
