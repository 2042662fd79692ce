package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateEmergencyAccessRequest struct {
	Reason string `json:"reason" validate:"required,min=10"`
}

type ReviewEmergencyAccessRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve deny"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EmergencyAccessResponse struct {
	ID           string  `json:"id"`
	AgentID      string  `json:"agent_id"`
	LocationID   string  `json:"location_id"`
	RequestedAt  string  `json:"requested_at"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ReviewedBy   *string `json:"reviewed_by"`
	ReviewedAt   *string `json:"reviewed_at"`
	GrantedUntil *string `json:"granted_until"`
	Active       bool    `json:"active"`
}

type SubmissionWindowResponse struct {
	Open            bool   `json:"open"`
	EmergencyAccess bool   `json:"emergency_access"`
	Reason          string `json:"reason"`
}
