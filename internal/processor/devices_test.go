package processor

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/geocoord/internal/device"
	"github.com/woozymasta/geocoord/internal/geo"
)

func newRegistry(t *testing.T) *device.StaticRegistry {
	t.Helper()
	reg, err := device.NewStaticRegistry([]device.Device{
		{Name: "tx-1", Role: device.RoleDesired, Position: device.Position{Z: 40}, Active: true},
		{Name: "rx-1", Role: device.RoleReceiver, Position: device.Position{X: 100, Y: 100}, Active: true},
		{Name: "jam-off", Role: device.RoleJammer, Position: device.Position{X: 10}},
		{Name: "lost", Role: device.RoleReceiver, Position: device.Position{Y: 1e9}, Active: true},
	})
	if err != nil {
		t.Fatalf("NewStaticRegistry: %v", err)
	}
	return reg
}

func TestDeviceFeatures(t *testing.T) {
	fc, err := DeviceFeatures(context.Background(), newRegistry(t), geo.DefaultSceneFrame(), false)
	if err != nil {
		t.Fatalf("DeviceFeatures: %v", err)
	}
	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q", fc.Type)
	}
	// jam-off is inactive and lost is outside the domain.
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}

	tx := fc.Features[0]
	if tx.Properties["name"] != "tx-1" || tx.Geometry.Type != "Point" {
		t.Errorf("feature 0 = %+v", tx)
	}
	want := []float64{geo.DefaultSceneOriginLongitude, geo.DefaultSceneOriginLatitude, 40}
	if len(tx.Geometry.Coordinates) != 3 {
		t.Fatalf("coordinates = %v, want %v", tx.Geometry.Coordinates, want)
	}
	for i := range want {
		if math.Abs(tx.Geometry.Coordinates[i]-want[i]) > 1e-12 {
			t.Errorf("coordinates = %v, want %v", tx.Geometry.Coordinates, want)
		}
	}

	if got := len(fc.Features[1].Geometry.Coordinates); got != 2 {
		t.Errorf("surface device has %d coordinates, want 2", got)
	}

	all, err := DeviceFeatures(context.Background(), newRegistry(t), geo.DefaultSceneFrame(), true)
	if err != nil {
		t.Fatalf("DeviceFeatures: %v", err)
	}
	if len(all.Features) != 3 {
		t.Errorf("with inactive: expected 3 features, got %d", len(all.Features))
	}
}

func TestExportDevices(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "devices.geojson")
	reg := newRegistry(t)
	frame := geo.DefaultSceneFrame()

	if err := ExportDevices(context.Background(), reg, frame, dest, false, false); err != nil {
		t.Fatalf("ExportDevices: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var fc geo.GeoJSONFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}

	// Existing file is left alone without force.
	if err := os.WriteFile(dest, []byte("keep"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := ExportDevices(context.Background(), reg, frame, dest, false, false); err != nil {
		t.Fatalf("ExportDevices: %v", err)
	}
	if data, _ := os.ReadFile(dest); string(data) != "keep" {
		t.Errorf("file rewritten without force: %q", data)
	}

	if err := ExportDevices(context.Background(), reg, frame, dest, true, true); err != nil {
		t.Fatalf("ExportDevices force: %v", err)
	}
	if data, _ := os.ReadFile(dest); string(data) == "keep" {
		t.Errorf("file not rewritten with force")
	}
}
