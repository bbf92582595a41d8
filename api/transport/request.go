package transport

// DonationRequest is the client payload for posting or editing a donation.
// Identity fields (donor id, status, claimant) submitted here are ignored
// by the server.
type DonationRequest struct {
	FoodType      string            `json:"food_type"`
	Category      string            `json:"category"`
	Quantity      string            `json:"quantity"`
	Description   string            `json:"description"`
	PickupAddress string            `json:"pickup_address"`
	ExpiryTime    string            `json:"expiry_time"`
	DonorName     string            `json:"donor_name"`
	DonorPhone    string            `json:"donor_phone"`
	Preferences   map[string]string `json:"preferences"`
}

// CompleteRequest optionally carries pickup feedback.
type CompleteRequest struct {
	Feedback string `json:"feedback"`
}

type ProfileUpdateRequest struct {
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Phone   string            `json:"phone"`
	Address string            `json:"address"`
	Status  string            `json:"status"`
	Meta    map[string]string `json:"metadata"`
}

type EventRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	StartsAt        string `json:"starts_at"`
	Location        string `json:"location"`
	Organizer       string `json:"organizer"`
	Type            string `json:"type"`
	MaxParticipants int    `json:"max_participants"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
