package dto

// NotificationItem is one inbox row in API responses
type NotificationItem struct {
	ID        string `json:"notification_id"`
	TripID    string `json:"trip_id,omitempty"`
	Type      string `json:"notification_type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
	ReadAt    string `json:"read_at,omitempty"`
}

// NotificationsPagination carries list paging info
type NotificationsPagination struct {
	Total       int `json:"total"`
	UnreadCount int `json:"unread_count"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
}

// NotificationsListResponse envelope
type NotificationsListResponse struct {
	Notifications []NotificationItem      `json:"notifications"`
	Pagination    NotificationsPagination `json:"pagination"`
}

// UnreadCountResponse envelope
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}
