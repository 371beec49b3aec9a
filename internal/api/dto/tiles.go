package dto

type SaveTilesRequest struct {
	MinLat  float64 `json:"min_lat"`
	MinLng  float64 `json:"min_lng"`
	MaxLat  float64 `json:"max_lat"`
	MaxLng  float64 `json:"max_lng"`
	MinZoom int     `json:"min_zoom"`
	MaxZoom int     `json:"max_zoom"`
}

type SaveTilesResponse struct {
	Saved  int    `json:"saved"`
	Failed int    `json:"failed"`
	Total  int    `json:"total"`
	Error  string `json:"error,omitempty"`
}

type TileCountResponse struct {
	Count        int  `json:"count"`
	OfflineReady bool `json:"offline_ready"`
}
