package dto

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=120"`
	Documento string  `json:"documento" validate:"required,min=4,max=30"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Correo    *string `json:"correo"    validate:"omitempty,email"`
}

type ClienteResponse struct {
	ID        uint    `json:"id_cliente"`
	Nombre    string  `json:"nombre"`
	Documento string  `json:"documento"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Correo    *string `json:"correo"`
}
