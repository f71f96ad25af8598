package controllers

import (
	"eventory/internal/delivery/http/helpers"
)

// StatusResponse is the data payload for operations that return no entity (e.g. DELETE).
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusSuccessResponse is the success envelope wrapping a StatusResponse.
type StatusSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

var deletedResponse = StatusResponse{Status: "deleted"}
