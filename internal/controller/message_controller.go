package controller

import (
	"farmmarket-be/internal/pkg/serverutils"
	"farmmarket-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	Thread(ctx *fiber.Ctx) error
}

type messageController struct {
	service service.IMessageService
}

func NewMessageController(service service.IMessageService) IMessageController {
	return &messageController{service: service}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/message/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("thread/:peerId", c.Thread)
}

func (c *messageController) Thread(ctx *fiber.Ctx) error {
	userIdStr, _ := serverutils.UserIdFromLocals(ctx)
	userId, _ := uuid.Parse(userIdStr)

	peerId, err := uuid.Parse(ctx.Params("peerId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid peer id"))
	}

	res, err := c.service.Thread(ctx.UserContext(), userId, peerId)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show message thread", res))
}
