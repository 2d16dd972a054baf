package controller

import (
	"farmmarket-be/internal/dto"
	"farmmarket-be/internal/pkg/serverutils"
	"farmmarket-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOrderController interface {
	RegisterRoutes(r fiber.Router)
	Checkout(ctx *fiber.Ctx) error
	MyOrders(ctx *fiber.Ctx) error
	Review(ctx *fiber.Ctx) error
}

type orderController struct {
	service service.IOrderService
}

func NewOrderController(service service.IOrderService) IOrderController {
	return &orderController{service: service}
}

func (c *orderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/order/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("checkout", c.Checkout)
	h.Get("my", c.MyOrders)
	h.Post("review", c.Review)
}

func (c *orderController) Checkout(ctx *fiber.Ctx) error {
	userIdStr, _ := serverutils.UserIdFromLocals(ctx)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.service.Checkout(ctx.UserContext(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success place order", res))
}

func (c *orderController) MyOrders(ctx *fiber.Ctx) error {
	userIdStr, _ := serverutils.UserIdFromLocals(ctx)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.MyOrders(ctx.UserContext(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list orders", res))
}

func (c *orderController) Review(ctx *fiber.Ctx) error {
	userIdStr, _ := serverutils.UserIdFromLocals(ctx)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ReviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.service.CreateReview(ctx.UserContext(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create review", res))
}
