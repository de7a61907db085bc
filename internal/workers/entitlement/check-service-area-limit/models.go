// internal/workers/entitlement/check-service-area-limit/models.go
package checkservicearealimit

type Input struct {
	Tier                string `json:"tier"`
	CurrentServiceAreas int    `json:"currentServiceAreas"`
}

type Output struct {
	CanAccess bool   `json:"canAccess"`
	Reason    string `json:"reason,omitempty"`
}
