package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PermissionPair par (recurso, acción) tal como viaja por el API.
type PermissionPair struct {
	Resource string `json:"recurso"`
	Action   string `json:"accion"`
}
