package model

// Identity is the authenticated caller of a request.
type Identity struct {
	AccountID string
	Email     string
	IsAdmin   bool
}
