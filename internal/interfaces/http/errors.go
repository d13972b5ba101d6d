package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/domain"
)

// responderError mapea errores de dominio a códigos HTTP. Todo lo que no sea
// un *domain.Error se responde como 500 sin filtrar el detalle interno.
func responderError(c *fiber.Ctx, err error) error {
	derr := domain.AsError(err)
	if derr == nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}

	status := fiber.StatusInternalServerError
	switch derr.Kind {
	case domain.KindValidation:
		status = fiber.StatusBadRequest
	case domain.KindUnauthorized:
		status = fiber.StatusUnauthorized
	case domain.KindForbidden:
		status = fiber.StatusForbidden
	case domain.KindNotFound:
		status = fiber.StatusNotFound
	case domain.KindConflict:
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:    derr.Code,
		Message: derr.Message,
		Details: derr.Details,
	})
}

func responderNoEncontrado(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func responderCuerpoInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).
		JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
