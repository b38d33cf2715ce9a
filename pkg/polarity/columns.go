package polarity

// Column names of the SKHASH tabular polarity format. Exported pick
// tables use the same names so they can be read back as input.
const (
	ColEventID            = "event_id"
	ColEventID2           = "event_id2"
	ColNetwork            = "network"
	ColStation            = "station"
	ColLocation           = "location"
	ColChannel            = "channel"
	ColStaCode            = "sta_code"
	ColPPolarity          = "p_polarity"
	ColTakeoff            = "takeoff"
	ColTakeoffUncertainty = "takeoff_uncertainty"
	ColAzimuth            = "azimuth"
	ColAzimuthUncertainty = "azimuth_uncertainty"
	ColDistance           = "sr_dist_km"
	ColOriginLatitude     = "origin_latitude"
	ColOriginLongitude    = "origin_longitude"
	ColOriginDepth        = "origin_depth_km"
	ColHorzUncertainty    = "horz_uncert_km"
	ColVertUncertainty    = "vert_uncert_km"
)

// Column names of the SKHASH earthquake catalog format.
const (
	ColCatalogTime      = "time"
	ColCatalogLatitude  = "latitude"
	ColCatalogLongitude = "longitude"
	ColCatalogDepth     = "depth"
	ColCatalogMagnitude = "mag"
)

// TabularColumns is the allow-list of tabular input columns. Other
// columns are ignored.
var TabularColumns = []string{
	ColEventID, ColEventID2, ColNetwork, ColStation, ColLocation,
	ColChannel, ColPPolarity, ColTakeoff, ColTakeoffUncertainty,
	ColAzimuth, ColAzimuthUncertainty, ColDistance, ColOriginLatitude,
	ColOriginLongitude, ColOriginDepth, ColHorzUncertainty,
	ColVertUncertainty,
}

// RequiredTabularColumns must be present in a tabular input.
var RequiredTabularColumns = []string{ColEventID, ColPPolarity}

// CatalogColumns is the column order of exported catalogs.
var CatalogColumns = []string{
	ColCatalogTime, ColCatalogLatitude, ColCatalogLongitude,
	ColCatalogDepth, ColHorzUncertainty, ColVertUncertainty,
	ColCatalogMagnitude, ColEventID,
}
