// internal/workers/entitlement/check-job-request-limit/models.go
package checkjobrequestlimit

type Input struct {
	Tier               string `json:"tier"`
	CurrentJobRequests int    `json:"currentJobRequests"`
}

type Output struct {
	CanAccess bool   `json:"canAccess"`
	Reason    string `json:"reason,omitempty"`
}
