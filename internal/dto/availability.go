package dto

// DateRange is one submitted availability range (inclusive endpoints)
type DateRange struct {
	StartDate string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required"`   // YYYY-MM-DD
}

// SubmitAvailabilityRequest replaces all of the caller's ranges for a trip.
// An empty ranges array clears them.
type SubmitAvailabilityRequest struct {
	TripID string      `json:"trip_id" validate:"required,uuid"`
	Ranges []DateRange `json:"ranges" validate:"dive"`
}

// SubmitAvailabilityResponse envelope
type SubmitAvailabilityResponse struct {
	Message     string `json:"message"`
	RangesSaved int    `json:"ranges_saved"`
}

// HeatmapResponse maps each calendar date to the users available that day.
// Dates lists the map keys in natural date order for presentation.
type HeatmapResponse struct {
	Success bool                `json:"success"`
	Data    map[string][]string `json:"data"`
	Dates   []string            `json:"dates"`
}
