package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateVendorRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VendorResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	CreatedAt string  `json:"created_at"`
	Message   string  `json:"message,omitempty"`
}

// MessageResponse is the body for delete confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}
