// Package device defines the device records the coordinate service consumes
// and the registry interface it reads them through.
package device

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/woozymasta/geocoord/internal/geo"
)

// Role is the part a device plays in a scene.
type Role string

// Known device roles.
const (
	RoleDesired  Role = "desired"
	RoleReceiver Role = "receiver"
	RoleJammer   Role = "jammer"
)

// ErrNotFound is returned when a device does not exist.
var ErrNotFound = errors.New("device not found")

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleDesired, RoleReceiver, RoleJammer:
		return true
	}
	return false
}

// Position is a raw scene position. No frame is attached; callers choose
// how to interpret it (see geo.SceneFrame).
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Orientation is a rotation triple in radians.
type Orientation struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Device is a transmitter, receiver or jammer placed in the scene.
type Device struct {
	Name        string      `yaml:"name" json:"name"`
	Role        Role        `yaml:"role" json:"role"`
	Position    Position    `yaml:"position" json:"position"`
	Orientation Orientation `yaml:"orientation" json:"orientation"`
	ID          int         `yaml:"id" json:"id"`
	PowerDBm    int         `yaml:"power_dbm" json:"power_dbm"`
	Active      bool        `yaml:"active" json:"active"`
}

// Registry is the read side of the device store.
type Registry interface {
	// List returns devices ordered by ID. An empty role returns every device.
	List(ctx context.Context, role Role) ([]Device, error)
	// Get returns the device with the given ID or an error wrapping ErrNotFound.
	Get(ctx context.Context, id int) (Device, error)
}

// Locate converts the scene position of d to geographic coordinates.
func Locate(frame geo.SceneFrame, d Device) (geo.GeoCoordinate, error) {
	g, err := frame.ToGeo(d.Position.X, d.Position.Y, d.Position.Z)
	if err != nil {
		return geo.GeoCoordinate{}, fmt.Errorf("locate device %q: %w", d.Name, err)
	}
	return g, nil
}

// StaticRegistry is an immutable in-memory Registry.
type StaticRegistry struct {
	byID    map[int]Device
	ordered []Device
}

// NewStaticRegistry validates devices and builds a registry over them.
// Devices without an ID are numbered after the highest explicit ID.
func NewStaticRegistry(devices []Device) (*StaticRegistry, error) {
	maxID := 0
	for _, d := range devices {
		if d.ID > maxID {
			maxID = d.ID
		}
	}

	byID := make(map[int]Device, len(devices))
	names := make(map[string]bool, len(devices))
	ordered := make([]Device, 0, len(devices))

	for _, d := range devices {
		if d.Name == "" {
			return nil, errors.New("device without a name")
		}
		if names[d.Name] {
			return nil, fmt.Errorf("duplicate device name %q", d.Name)
		}
		if !d.Role.Valid() {
			return nil, fmt.Errorf("device %q: unknown role %q", d.Name, d.Role)
		}
		if d.ID < 0 {
			return nil, fmt.Errorf("device %q: negative id %d", d.Name, d.ID)
		}
		if d.ID == 0 {
			maxID++
			d.ID = maxID
		}
		if _, ok := byID[d.ID]; ok {
			return nil, fmt.Errorf("device %q: duplicate id %d", d.Name, d.ID)
		}

		names[d.Name] = true
		byID[d.ID] = d
		ordered = append(ordered, d)
	}

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	return &StaticRegistry{byID: byID, ordered: ordered}, nil
}

// List implements Registry.
func (r *StaticRegistry) List(ctx context.Context, role Role) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	out := make([]Device, 0, len(r.ordered))
	for _, d := range r.ordered {
		if role == "" || d.Role == role {
			out = append(out, d)
		}
	}
	return out, nil
}

// Get implements Registry.
func (r *StaticRegistry) Get(ctx context.Context, id int) (Device, error) {
	if err := ctx.Err(); err != nil {
		return Device{}, err
	}
	d, ok := r.byID[id]
	if !ok {
		return Device{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return d, nil
}
