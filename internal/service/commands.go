package service

type InboundMessageCommand struct {
	From      string
	WaID      string
	Body      string
	Latitude  string
	Longitude string
	Media     []InboundMedia
}

type InboundMedia struct {
	URL         string
	ContentType string
}

type SendNotificationCommand struct {
	NotificationID int64   `json:"notification_id"`
	ToWaID         string  `json:"to_waid"`
	Body           string  `json:"body"`
	MediaURL       *string `json:"media_url,omitempty"`
}

type EnqueueNotificationCommand struct {
	ToWaID   string
	Body     string
	Kind     string
	MediaURL *string
}

type TrackFlightCommand struct {
	WaID       string
	FlightIATA string
	FlightDate string
}

type UpdateNotificationToSendingCommand struct {
	NotificationID int64
	AttemptCount   int
}

type UpdateNotificationSuccessCommand struct {
	NotificationID int64
	ProviderSID    string
}

type UpdateNotificationFailureCommand struct {
	NotificationID int64
	LastError      string
}
