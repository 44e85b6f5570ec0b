package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"trip-planner-service/internal/domain"
)

type matrixResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrixRow retrieves durations from one origin to every destination in a
// single Directions Matrix request. Null durations (no route) become +Inf.
func (p *MapboxProvider) fetchMatrixRow(
	ctx context.Context,
	profile string,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]float64, error) {
	if len(destinations) == 0 {
		return []float64{}, nil
	}

	endpoint := p.matrixURL(profile, origin, destinations)

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if mr.Code != "" && mr.Code != "Ok" {
		return nil, fmt.Errorf("matrix returned code %s: %s", mr.Code, mr.Message)
	}
	if len(mr.Durations) != 1 {
		return nil, fmt.Errorf("expected 1 source row; got %d", len(mr.Durations))
	}

	row := mr.Durations[0]
	if len(row) != len(destinations) {
		return nil, fmt.Errorf(
			"row length does not match destinations: durations=%d destinations=%d",
			len(row), len(destinations),
		)
	}

	out := make([]float64, len(row))
	for i, seconds := range row {
		if seconds == nil {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = *seconds
	}

	return out, nil
}

// matrixURL builds {base}/{profile}/{lng,lat;...}?sources=0&destinations=1;2;...
// The origin is always coordinate 0.
func (p *MapboxProvider) matrixURL(profile string, origin domain.Coordinates, destinations []domain.Coordinates) string {
	coords := make([]string, 0, 1+len(destinations))
	coords = append(coords, formatCoord(origin))
	for _, d := range destinations {
		coords = append(coords, formatCoord(d))
	}

	destIdx := make([]string, 0, len(destinations))
	for i := 1; i <= len(destinations); i++ {
		destIdx = append(destIdx, strconv.Itoa(i))
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(p.baseURL, "/"))
	b.WriteByte('/')
	b.WriteString(profile)
	b.WriteByte('/')
	b.WriteString(strings.Join(coords, ";"))
	b.WriteString("?sources=0&destinations=")
	b.WriteString(strings.Join(destIdx, ";"))
	b.WriteString("&annotations=duration&access_token=")
	b.WriteString(url.QueryEscape(p.token))

	return b.String()
}

func formatCoord(c domain.Coordinates) string {
	lonLat := c.CoordsToList()
	return strconv.FormatFloat(lonLat[0], 'f', -1, 64) + "," + strconv.FormatFloat(lonLat[1], 'f', -1, 64)
}
