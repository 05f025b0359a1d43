package dto

// CreateTripRequest represents the payload to create a trip
type CreateTripRequest struct {
	Name        string `json:"trip_name" validate:"required,max=255"`
	Description string `json:"description"`
	NumDays     int    `json:"num_days" validate:"required,min=1,max=365"`
}

// TripResponse represents a trip object in responses
type TripResponse struct {
	ID          string `json:"trip_id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"trip_name"`
	Description string `json:"description"`
	NumDays     int    `json:"num_days"`
	InviteCode  string `json:"invite_code"`
	InviteLink  string `json:"invite_link"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	ConfirmedAt string `json:"confirmed_at,omitempty"`
}

// CreateTripResponse envelope
type CreateTripResponse struct {
	Message string       `json:"message"`
	Trip    TripResponse `json:"trip"`
}

// TripListItem is one row of the caller's trip list
type TripListItem struct {
	ID          string `json:"trip_id"`
	Name        string `json:"trip_name"`
	Status      string `json:"status"`
	NumDays     int    `json:"num_days"`
	InviteCode  string `json:"invite_code"`
	Role        string `json:"role"`
	MemberCount int    `json:"member_count"`
	CreatedAt   string `json:"created_at"`
}

// TripListResponse envelope
type TripListResponse struct {
	Success bool           `json:"success"`
	Data    []TripListItem `json:"data"`
}

// TripMemberItem is a member row in trip detail
type TripMemberItem struct {
	MemberID  string  `json:"member_id"`
	UserID    string  `json:"user_id"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Role      string  `json:"role"`
	JoinedAt  string  `json:"joined_at"`
}

// TripDetailResponse envelope
type TripDetailResponse struct {
	Success bool             `json:"success"`
	Trip    TripResponse     `json:"trip"`
	Members []TripMemberItem `json:"members"`
}

// DeleteTripRequest identifies the trip to delete
type DeleteTripRequest struct {
	TripID string `json:"trip_id" validate:"required,uuid"`
}

// JoinTripRequest joins a trip by invite code
type JoinTripRequest struct {
	InviteCode string `json:"invite_code" validate:"required,len=6"`
}

// JoinByLinkRequest joins a trip by the id embedded in an invite link
type JoinByLinkRequest struct {
	TripID string `json:"trip_id" validate:"required,uuid"`
}

// JoinTripResponse envelope
type JoinTripResponse struct {
	Message string       `json:"message"`
	Trip    TripResponse `json:"trip"`
}
