package schema

import "time"

// EnrichedPoint adds presentation data to a SeriesPoint.
type EnrichedPoint struct {
	Index int     `json:"index"`
	Delta float64 `json:"delta"` // Change against the previous plotted point, 0 for the first
	SeriesPoint
}

// RenderResult summarizes one end-to-end render run.
type RenderResult struct {
	RunUUID    string        `json:"run_uuid"`
	Series     Series        `json:"series"`
	Stats      BuildStats    `json:"stats"`
	VectorPath string        `json:"vector_path"`
	RasterPath string        `json:"raster_path,omitempty"` // Empty when raster conversion is disabled
	YMin       float64       `json:"y_min"`
	YMax       float64       `json:"y_max"`
	Converter  string        `json:"converter_output,omitempty"` // Text emitted by the raster converter
	Duration   time.Duration `json:"duration"`
}

// EnrichPoints adds index and delta to a list of series points.
func EnrichPoints(points []SeriesPoint) []EnrichedPoint {
	output := make([]EnrichedPoint, len(points))
	for i, p := range points {
		var delta float64
		if i > 0 {
			delta = p.Value - points[i-1].Value
		}
		output[i] = EnrichedPoint{
			Index:       i + 1,
			Delta:       delta,
			SeriesPoint: p,
		}
	}
	return output
}
