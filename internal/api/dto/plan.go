package dto

type PlanRequest struct {
	Mode            string `json:"mode"`
	IncludeRequests bool   `json:"include_requests"`
}

type StartResponse struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	IsFallback bool    `json:"is_fallback"`
}

type PlanResponse struct {
	Start            StartResponse  `json:"start"`
	Stops            []StopResponse `json:"stops"`
	TotalDistanceKm  float64        `json:"total_distance_km"`
	TotalTimeMinutes float64        `json:"total_time_minutes"`
	DirectionsURL    string         `json:"directions_url"`
	Warning          string         `json:"warning,omitempty"`
}
