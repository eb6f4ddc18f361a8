// File: types.go
package main

// StartResponse is returned by /api/challenge/start
type StartResponse struct {
	UUID        string `json:"uuid"`
	Image       string `json:"image"` // Base64 PNG data URI
	Instruction string `json:"instruction"`
}

// VerifyRequest is the JSON body for /api/challenge/verify
type VerifyRequest struct {
	UUID string   `json:"uuid"`
	X    *float64 `json:"x"` // image pixel coordinates of the click
	Y    *float64 `json:"y"`
}

// VerifyResponse is returned by /api/challenge/verify
type VerifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
