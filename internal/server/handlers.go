// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/woozymasta/geocoord/internal/device"
	"github.com/woozymasta/geocoord/internal/geo"
	"github.com/woozymasta/geocoord/internal/metrics"
	"github.com/woozymasta/geocoord/internal/processor"

	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 64 << 10

// BearingDistanceRequest is the body of the bearing-distance endpoint.
type BearingDistanceRequest struct {
	From geo.GeoCoordinate `json:"from"`
	To   geo.GeoCoordinate `json:"to"`
}

// BearingDistanceResponse holds the initial bearing (degrees) and distance (meters).
type BearingDistanceResponse struct {
	Bearing  float64 `json:"bearing"`
	Distance float64 `json:"distance"`
}

// DestinationRequest is the body of the destination endpoint.
type DestinationRequest struct {
	Start    geo.GeoCoordinate `json:"start"`
	Bearing  float64           `json:"bearing"`
	Distance float64           `json:"distance"`
}

// LocatedDevice is a device with its geographic position. Location is nil
// and LocationError set when the scene position cannot be mapped.
type LocatedDevice struct {
	Location      *geo.GeoCoordinate `json:"location,omitempty"`
	LocationError string             `json:"location_error,omitempty"`
	device.Device
}

func bearingDistance(req BearingDistanceRequest) (BearingDistanceResponse, error) {
	bearing, distance, err := geo.BearingDistance(req.From, req.To)
	return BearingDistanceResponse{Bearing: bearing, Distance: distance}, err
}

func destinationPoint(req DestinationRequest) (geo.GeoCoordinate, error) {
	return geo.DestinationPoint(req.Start, req.Bearing, req.Distance)
}

func utmToGeo(req geo.UTMCoordinate) (geo.GeoCoordinate, error) {
	return geo.UTMToGeo(req.Easting, req.Northing, req.ZoneNumber, req.ZoneLetter)
}

func (s *ServerContext) sceneToGeo(p device.Position) (geo.GeoCoordinate, error) {
	return s.Frame.ToGeo(p.X, p.Y, p.Z)
}

// handleConversion adapts a pure coordinate operation to a JSON endpoint.
// Domain errors are the caller's fault and map to 400.
func handleConversion[In, Out any](s *ServerContext, op string, fn func(In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			s.Metrics.ObserveConversion(op, metrics.OutcomeBadRequest)
			writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		// Exactly one JSON value per body.
		if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
			s.Metrics.ObserveConversion(op, metrics.OutcomeBadRequest)
			writeError(w, r, http.StatusBadRequest, "invalid request body: unexpected data after JSON value")
			return
		}

		out, err := fn(in)
		if err != nil {
			if errors.Is(err, geo.ErrDomain) {
				s.Metrics.ObserveConversion(op, metrics.OutcomeDomainError)
				log.Debug().Err(err).Str("op", op).Msg("Rejected coordinate outside domain")
				writeError(w, r, http.StatusBadRequest, err.Error())
				return
			}
			log.Error().Err(err).Str("op", op).Msg("Conversion failed")
			writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		s.Metrics.ObserveConversion(op, metrics.OutcomeOK)
		writeJSON(w, r, http.StatusOK, out)
	}
}

// HandleDevicesList serves devices with their geographic positions,
// optionally filtered by ?role=.
func (s *ServerContext) HandleDevicesList(w http.ResponseWriter, r *http.Request) {
	role := device.Role(r.URL.Query().Get("role"))
	if role != "" && !role.Valid() {
		writeError(w, r, http.StatusBadRequest, "unknown role "+strconv.Quote(string(role)))
		return
	}

	devices, err := s.Registry.List(r.Context(), role)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list devices")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]LocatedDevice, 0, len(devices))
	for _, d := range devices {
		out = append(out, s.locate(d))
	}
	writeJSON(w, r, http.StatusOK, out)
}

// HandleDevice serves a single device by ID.
func (s *ServerContext) HandleDevice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid device id")
		return
	}

	d, err := s.Registry.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, device.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		log.Error().Err(err).Int("id", id).Msg("Failed to get device")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, r, http.StatusOK, s.locate(d))
}

// HandleDevicesGeoJSON serves active devices as a GeoJSON FeatureCollection.
func (s *ServerContext) HandleDevicesGeoJSON(w http.ResponseWriter, r *http.Request) {
	fc, err := processor.DeviceFeatures(r.Context(), s.Registry, s.Frame, false)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build devices GeoJSON")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(fc)
}

// HandleHealth reports liveness.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *ServerContext) locate(d device.Device) LocatedDevice {
	located := LocatedDevice{Device: d}
	g, err := device.Locate(s.Frame, d)
	if err != nil {
		located.LocationError = err.Error()
		return located
	}
	located.Location = &g
	return located
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Encode response failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}
