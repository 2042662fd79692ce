package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type UpdateSettingsRequest struct {
	CutoffWindowEnabled     *bool `json:"cutoff_window_enabled"`
	CutoffHour              *int  `json:"cutoff_hour"               validate:"omitempty,min=0,max=23"`
	CutoffMinute            *int  `json:"cutoff_minute"             validate:"omitempty,min=0,max=59"`
	BusinessHoursStart      *int  `json:"business_hours_start"      validate:"omitempty,min=0,max=23"`
	BusinessHoursStartMin   *int  `json:"business_hours_start_min"  validate:"omitempty,min=0,max=59"`
	EmergencyAccessDuration *int  `json:"emergency_access_duration" validate:"omitempty,min=1,max=1440"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SettingsResponse struct {
	CutoffWindowEnabled     bool   `json:"cutoff_window_enabled"`
	CutoffHour              int    `json:"cutoff_hour"`
	CutoffMinute            int    `json:"cutoff_minute"`
	BusinessHoursStart      int    `json:"business_hours_start"`
	BusinessHoursStartMin   int    `json:"business_hours_start_min"`
	EmergencyAccessDuration int    `json:"emergency_access_duration"`
	UpdatedBy               *string `json:"updated_by"`
	UpdatedAt               string `json:"updated_at"`
}
