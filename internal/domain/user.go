package domain

// SystemActorID identifies the external payment verifier when it, rather
// than the host, confirms a guest's payment.
const SystemActorID = "system"

// User holds the profile fields this core reads: gender feeds the admission
// ratio cap, email and device tokens feed notification delivery. The profile
// itself is owned by the auth layer.
type User struct {
	ID           string   `json:"id" firestore:"id"`
	Name         string   `json:"name" firestore:"name"`
	Email        string   `json:"email" firestore:"email"`
	Gender       Gender   `json:"gender,omitempty" firestore:"gender"`
	DeviceTokens []string `json:"device_tokens,omitempty" firestore:"deviceTokens"`
}
