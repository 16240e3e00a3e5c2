package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cfb-realignment/realign-cli/internal/dataset"
	"github.com/cfb-realignment/realign-cli/internal/geo"
)

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Ad-hoc distance, center, hull and nearest-city calculations",
	Long: `Runs a single geospatial calculation on points given as "lat,lon" in degrees.
Put "--" before the points if the first one has a negative latitude.`,
}

// -- geo distance --

var geoDistanceCmd = &cobra.Command{
	Use:   "distance <lat,lon> <lat,lon>",
	Short: "Great-circle distance in miles between two points",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pts, err := parsePoints(args)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.2f mi\n", geo.Distance(pts[0], pts[1], geo.Degrees))
		return nil
	},
}

// -- geo center --

var geoCenterCmd = &cobra.Command{
	Use:   "center <lat,lon>...",
	Short: "Geographic center minimizing average distance to the points",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pts, err := parsePoints(args)
		if err != nil {
			return err
		}
		center, err := geo.GeographicCenter(pts)
		if err != nil {
			return eris.Wrap(err, "geo center")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "center: %.6f,%.6f\n", center.Lat, center.Lon)
		if len(pts) > 1 {
			avg, err := geo.AverageDistance(center, pts, geo.Degrees)
			if err != nil {
				return eris.Wrap(err, "geo center")
			}
			fmt.Fprintf(out, "avg distance from center: %.2f mi\n", avg)
		}
		return nil
	},
}

// -- geo hull --

var geoHullCmd = &cobra.Command{
	Use:   "hull <lat,lon>...",
	Short: "Convex hull (territory) of the points",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pts, err := parsePoints(args)
		if err != nil {
			return err
		}
		hull := geo.ConvexHull(pts)
		out := cmd.OutOrStdout()
		if len(hull) == 0 {
			fmt.Fprintln(out, "no territory: fewer than 3 non-collinear points")
			return nil
		}
		for _, p := range hull {
			fmt.Fprintf(out, "%.6f,%.6f\n", p.Lat, p.Lon)
		}
		return nil
	},
}

// -- geo nearest --

var geoNearestCmd = &cobra.Command{
	Use:   "nearest <lat,lon>",
	Short: "Nearest major city to a point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parsePoint(args[0])
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("cities")
		if path == "" {
			path = cfg.Data.CitiesPath
		}
		cities, err := dataset.LoadCities(path)
		if err != nil {
			return err
		}
		city, err := geo.FindNearestCity(p, cities)
		if err != nil {
			return eris.Wrap(err, "geo nearest")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s, %s (%.2f mi)\n", city.Name, city.State, geo.Distance(p, city.Point, geo.Degrees))
		return nil
	},
}

func init() {
	geoNearestCmd.Flags().String("cities", "", "major city CSV (default from config data.cities_path)")

	geoCmd.AddCommand(geoDistanceCmd)
	geoCmd.AddCommand(geoCenterCmd)
	geoCmd.AddCommand(geoHullCmd)
	geoCmd.AddCommand(geoNearestCmd)
	rootCmd.AddCommand(geoCmd)
}
