package rest

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// NotFoundError is the body of a 404 for an unknown customer.
type NotFoundError struct {
	Error string `json:"error"`
}

var customerNotFound = NotFoundError{Error: "Customer not found"}
