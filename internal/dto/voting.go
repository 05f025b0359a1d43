package dto

// StartVotingRequest opens a date-voting session for a trip
type StartVotingRequest struct {
	TripID string `json:"trip_id" validate:"required,uuid"`
}

// StartVotingResponse is returned with 201 on success
type StartVotingResponse struct {
	VotingID string `json:"voting_id"`
	Status   string `json:"status"`
}

// CloseVotingRequest closes the active session for a trip
type CloseVotingRequest struct {
	TripID string `json:"trip_id" validate:"required,uuid"`
}

// CloseVotingResponse envelope
type CloseVotingResponse struct {
	VotingID string `json:"voting_id"`
	Status   string `json:"status"`
	ClosedAt string `json:"closed_at"`
}

// ProvinceRanking is one entry of a ranked ballot (rank 1 = favorite)
type ProvinceRanking struct {
	Province string `json:"province" validate:"required,max=100"`
	Rank     int    `json:"rank" validate:"required,min=1"`
}

// SubmitProvincesRequest replaces the caller's ballot for a trip
type SubmitProvincesRequest struct {
	TripID   string            `json:"trip_id" validate:"required,uuid"`
	Rankings []ProvinceRanking `json:"rankings" validate:"required,min=1,dive"`
}

// SubmitProvincesResponse envelope
type SubmitProvincesResponse struct {
	Message    string `json:"message"`
	VotesSaved int    `json:"votes_saved"`
}

// ProvinceResult is one province's Borda-count standing
type ProvinceResult struct {
	Province        string `json:"province"`
	Points          int    `json:"points"`
	FirstPlaceVotes int    `json:"first_place_votes"`
}

// ProvinceResultsResponse envelope, ordered best first
type ProvinceResultsResponse struct {
	Success bool             `json:"success"`
	Results []ProvinceResult `json:"results"`
	Ballots int              `json:"ballots"`
}
