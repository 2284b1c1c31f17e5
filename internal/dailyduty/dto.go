package dailyduty

type StatusesResponse struct {
	Duties []Status `json:"duties"`
}
