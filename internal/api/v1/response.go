package v1

type HealthResponse struct {
	Status string `json:"status"`
}

type UploadResponse struct {
	OK      bool   `json:"ok"`
	FileID  string `json:"file_id"`
	Indexed int    `json:"indexed,omitempty"`
	URL     string `json:"url"`
}

type CronResponse struct {
	Status   string `json:"status"`
	Enqueued int    `json:"enqueued,omitempty"`
}
