package errors

type Response struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
