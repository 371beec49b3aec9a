package dto

type StopResponse struct {
	StopID       string   `json:"stop_id"`
	Type         string   `json:"type"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Location     string   `json:"location"`
	CustomerName string   `json:"customer_name"`
	WasteType    string   `json:"waste_type,omitempty"`
	Status       string   `json:"status"`
}

type ListStopsResponse struct {
	Stops []StopResponse `json:"stops"`
}
