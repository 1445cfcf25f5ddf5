// Package processor turns device records into geographic data products.
package processor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/woozymasta/geocoord/internal/device"
	"github.com/woozymasta/geocoord/internal/geo"

	"github.com/rs/zerolog/log"
)

// DeviceFeatures locates every device in reg with frame and returns them as
// Point features. Inactive devices are skipped unless includeInactive is
// set. A device that cannot be located is logged and left out.
func DeviceFeatures(ctx context.Context, reg device.Registry, frame geo.SceneFrame, includeInactive bool) (geo.GeoJSONFeatureCollection, error) {
	devices, err := reg.List(ctx, "")
	if err != nil {
		return geo.GeoJSONFeatureCollection{}, err
	}

	fc := geo.NewFeatureCollection(len(devices))
	for _, d := range devices {
		if !d.Active && !includeInactive {
			continue
		}

		location, err := device.Locate(frame, d)
		if err != nil {
			log.Warn().
				Err(err).
				Int("id", d.ID).
				Str("device", d.Name).
				Msg("Skipping device outside the geographic domain")
			continue
		}

		fc.Features = append(fc.Features, geo.PointFeature(location, map[string]interface{}{
			"id":        d.ID,
			"name":      d.Name,
			"role":      string(d.Role),
			"power_dbm": d.PowerDBm,
			"active":    d.Active,
		}))
	}

	return fc, nil
}

// ExportDevices writes the device feature collection to destFile. An
// existing file is kept unless force is set.
func ExportDevices(ctx context.Context, reg device.Registry, frame geo.SceneFrame, destFile string, includeInactive, force bool) error {
	if _, err := os.Stat(destFile); err == nil {
		if !force {
			log.Debug().Str("path", destFile).Msg("Devices file exists, skipping")
			return nil
		}
	}

	fc, err := DeviceFeatures(ctx, reg, frame, includeInactive)
	if err != nil {
		return err
	}

	log.Info().
		Str("path", destFile).
		Int("features", len(fc.Features)).
		Msg("Writing devices GeoJSON")

	return saveGeoJSON(filepath.Dir(destFile), destFile, fc)
}

// saveGeoJSON marshals the feature collection and writes it to disk.
func saveGeoJSON(dir, path string, fc geo.GeoJSONFeatureCollection) (err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
			if err == nil {
				err = closeErr
			}
		}
	}()

	return json.NewEncoder(f).Encode(fc)
}
