package dtos

type SendEmailRequest struct {
	To      string `json:"to" binding:"required,email"`
	ToName  string `json:"toName" binding:"max=255"`
	Subject string `json:"subject" binding:"required,max=255"`
	HTML    string `json:"html" binding:"required"`
}

type SendEmailResponse struct {
	Sent bool `json:"sent"`
}
