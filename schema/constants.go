package schema

// Custom string types for type safety.
type (
	// MetricRule selects how a snapshot's collection is turned into a number.
	MetricRule string

	// CollapsePolicy decides which repeated values are dropped from the series.
	CollapsePolicy string

	// ChartStyleName selects the rendering style of the chart.
	ChartStyleName string

	// OutputMode represents the format of the series output.
	OutputMode string

	// RasterBackend selects the raster conversion implementation.
	RasterBackend string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All metric rules supported.
const (
	CountRule  MetricRule = "count"  // default: every entity in the collection
	TitledRule MetricRule = "titled" // only entities carrying a non-empty title
)

// All collapse policies supported.
const (
	AdjacentCollapse CollapsePolicy = "adjacent" // default: drop runs of equal consecutive values
	NoCollapse       CollapsePolicy = "none"
	GlobalCollapse   CollapsePolicy = "global" // drop any value that was already plotted
)

// All chart styles supported.
const (
	LineStyle ChartStyleName = "line" // default
	GridStyle ChartStyleName = "grid"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All raster backends supported.
const (
	ImageMagickRaster RasterBackend = "imagemagick" // default
	NoRaster          RasterBackend = "none"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// ValidMetricRules lists all valid metric rules.
var ValidMetricRules = map[MetricRule]struct{}{
	CountRule:  {},
	TitledRule: {},
}

// ValidCollapsePolicies lists all valid collapse policies.
var ValidCollapsePolicies = map[CollapsePolicy]struct{}{
	AdjacentCollapse: {},
	NoCollapse:       {},
	GlobalCollapse:   {},
}

// ValidChartStyles lists all valid chart styles.
var ValidChartStyles = map[ChartStyleName]struct{}{
	LineStyle: {},
	GridStyle: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidRasterBackends lists all valid raster backends.
var ValidRasterBackends = map[RasterBackend]struct{}{
	ImageMagickRaster: {},
	NoRaster:          {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
