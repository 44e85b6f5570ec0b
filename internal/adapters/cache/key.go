package cache

import (
	"strconv"
	"strings"
	"trip-planner-service/internal/domain"
)

// BuildKey derives the cache key for one provider request:
//
//	<profile>:<lng>,<lat>:<lng>,<lat>|<lng>,<lat>|...
//
// Coordinates are rounded to 5 decimals (about 1 m), so nearby requests share entries.
func BuildKey(profile string, origin domain.Coordinates, destinations []domain.Coordinates) string {
	var b strings.Builder
	b.Grow(len(profile) + 24*(1+len(destinations)))

	b.WriteString(profile)
	b.WriteByte(':')
	writeCoord(&b, origin)
	b.WriteByte(':')
	for i, d := range destinations {
		if i > 0 {
			b.WriteByte('|')
		}
		writeCoord(&b, d)
	}

	return b.String()
}

func writeCoord(b *strings.Builder, c domain.Coordinates) {
	b.WriteString(strconv.FormatFloat(c.Lon, 'f', 5, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(c.Lat, 'f', 5, 64))
}
