package services

import (
	"collector-route-service/internal/domain"
	"strconv"
	"strings"
)

const directionsBaseURL = "https://www.google.com/maps/dir/?api=1"

// Travel modes accepted by the external mapping service.
var travelModes = map[string]bool{
	"driving":   true,
	"walking":   true,
	"bicycling": true,
}

// DirectionsURL builds an external mapping-service deep link for an
// ordered route: origin is the collector's start position, destination
// is the last stop, and all stops in between become waypoints in route
// order. An empty route yields an empty string (a degenerate case, not
// an error). Unknown modes fall back to driving.
func DirectionsURL(route []domain.Stop, start domain.GeoPoint, mode string) string {
	if len(route) == 0 {
		return ""
	}

	if !travelModes[mode] {
		mode = "driving"
	}

	last := route[len(route)-1]

	var b strings.Builder
	b.WriteString(directionsBaseURL)
	b.WriteString("&origin=")
	b.WriteString(formatCoords(start))
	b.WriteString("&destination=")
	b.WriteString(formatCoords(last.Point()))

	if len(route) > 1 {
		waypoints := make([]string, 0, len(route)-1)
		for _, s := range route[:len(route)-1] {
			waypoints = append(waypoints, formatCoords(s.Point()))
		}
		b.WriteString("&waypoints=")
		b.WriteString(strings.Join(waypoints, "|"))
	}

	b.WriteString("&travelmode=")
	b.WriteString(mode)

	return b.String()
}

// formatCoords renders "lat,lng" with the shortest exact decimal form.
func formatCoords(p domain.GeoPoint) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
