package catalog

// ---------- ROOMS ----------

type CreateRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HourlyRate  string `json:"hourly_rate"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	HourlyRate  *string `json:"hourly_rate,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ---------- CLIENTS ----------

type CreateClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// ---------- GEAR ----------

type CreateGearRequest struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}
