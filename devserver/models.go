package devserver

//go:generate easyjson -all models.go

type errorResponse struct {
	Detail string `json:"detail"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type messageResponse struct {
	Message string `json:"message"`
}
