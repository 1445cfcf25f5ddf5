package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/geocoord/internal/geo"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Op     string `long:"op" description:"Operation to run" required:"true" choice:"geo-to-cartesian" choice:"cartesian-to-geo" choice:"geo-to-ecef" choice:"ecef-to-geo" choice:"bearing-distance" choice:"destination" choice:"geo-to-utm" choice:"utm-to-geo" choice:"scene-to-geo"`
	Output string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`

	Lat  float64  `long:"lat" description:"Latitude in degrees"`
	Lon  float64  `long:"lon" description:"Longitude in degrees"`
	Alt  *float64 `long:"alt" description:"Altitude in meters (use --alt=-5 for negative values)"`
	Lat2 float64  `long:"lat2" description:"Second point latitude for bearing-distance"`
	Lon2 float64  `long:"lon2" description:"Second point longitude for bearing-distance"`

	X float64 `short:"x" description:"Cartesian X (km for cartesian-to-geo, m for ecef-to-geo, scene units for scene-to-geo)"`
	Y float64 `short:"y" description:"Cartesian Y"`
	Z float64 `short:"z" description:"Cartesian Z"`

	Bearing  float64 `long:"bearing" description:"Initial bearing in degrees clockwise from north"`
	Distance float64 `long:"distance" description:"Distance in meters"`

	Easting  float64 `long:"easting" description:"UTM easting in meters"`
	Northing float64 `long:"northing" description:"UTM northing in meters"`
	Zone     int     `long:"zone" description:"UTM zone number"`
	Letter   string  `long:"letter" description:"UTM latitude band letter"`
}

// BearingDistance is the result of the bearing-distance operation.
type BearingDistance struct {
	Bearing  float64 `json:"bearing" yaml:"bearing"`
	Distance float64 `json:"distance" yaml:"distance"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	result, err := run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, geo.ErrDomain) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	outputData, err := marshal(result, opts.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s result to %s (format: %s)\n", opts.Op, opts.Output, opts.Format)
		return
	}
	fmt.Println(string(outputData))
}

func run(opts Options) (any, error) {
	point := geo.GeoCoordinate{Latitude: opts.Lat, Longitude: opts.Lon, Altitude: opts.Alt}
	vec := geo.CartesianCoordinate{X: opts.X, Y: opts.Y, Z: opts.Z}

	switch opts.Op {
	case "geo-to-cartesian":
		return geo.GeoToCartesian(point)
	case "cartesian-to-geo":
		return geo.CartesianToGeo(vec)
	case "geo-to-ecef":
		return geo.GeoToECEF(point)
	case "ecef-to-geo":
		return geo.ECEFToGeo(vec)
	case "bearing-distance":
		to := geo.GeoCoordinate{Latitude: opts.Lat2, Longitude: opts.Lon2}
		bearing, distance, err := geo.BearingDistance(point, to)
		if err != nil {
			return nil, err
		}
		return BearingDistance{Bearing: bearing, Distance: distance}, nil
	case "destination":
		return geo.DestinationPoint(point, opts.Bearing, opts.Distance)
	case "geo-to-utm":
		return geo.GeoToUTM(point)
	case "utm-to-geo":
		return geo.UTMToGeo(opts.Easting, opts.Northing, opts.Zone, opts.Letter)
	case "scene-to-geo":
		return geo.DefaultSceneFrame().ToGeo(opts.X, opts.Y, opts.Z)
	}
	return nil, fmt.Errorf("unknown operation %q", opts.Op)
}

func marshal(v any, format string) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
