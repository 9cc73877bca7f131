package response

import "attendance-bot/internal/domain/models"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Response struct {
	Status  string        `json:"status"`
	Message string        `json:"message,omitempty"`
	Detail  string        `json:"detail,omitempty"`
	Punch   *models.Punch `json:"punch,omitempty"`
}

type History struct {
	Status  string         `json:"status"`
	Punches []models.Punch `json:"punches"`
}

func OK(msg string) Response {
	return Response{
		Status:  StatusSuccess,
		Message: msg,
	}
}

func Err(detail string) Response {
	return Response{
		Status: StatusError,
		Detail: detail,
	}
}
