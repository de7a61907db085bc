// internal/workers/entitlement/check-feature-access/models.go
package checkfeatureaccess

type Input struct {
	Tier    string `json:"tier"`
	Feature string `json:"feature"`
}

// Output is the gate decision. Reason is set only on denial.
type Output struct {
	CanAccess bool   `json:"canAccess"`
	Reason    string `json:"reason,omitempty"`
}
