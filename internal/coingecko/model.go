package coingecko

// SimplePriceResponse represents the raw JSON response of the /simple/price
// endpoint: a mapping of coin ID to a per-currency quote map, e.g.
//
//	{"bitcoin": {"cad": 60000.12}, "ethereum": {"cad": 3100.5}}
//
// Coins the API has no quote for are simply absent from the map.
type SimplePriceResponse map[string]map[string]float64
