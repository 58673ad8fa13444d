package types

// AccountProfile remembers who last signed in against a given backend.
type AccountProfile struct {
	ServerURL string   `json:"server_url"`
	Username  Username `json:"username"`
	Role      Role     `json:"role"`
}
