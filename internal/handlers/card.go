package handlers

import (
	"marketplace/internal/models"
	"marketplace/internal/services/card"
	"marketplace/internal/utils/pagination"
	"marketplace/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CardHandler struct {
	cardService card.Service
	log         *zap.Logger
}

func NewCardHandler(cardService card.Service, log *zap.Logger) *CardHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CardHandler{cardService: cardService, log: log}
}

func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	var input models.CreateCardInput
	if err := bind(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	created, err := h.cardService.Create(c.UserContext(), p, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return response.Created(c, "Card created successfully", created)
}

func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid card ID")
	}

	dto, err := h.cardService.GetByID(c.UserContext(), p, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return response.Success(c, "Card retrieved successfully", dto)
}

func (h *CardHandler) SearchCard(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	var query models.CardSearch
	if err := bindQuery(c, &query); err != nil {
		return respondError(c, h.log, err)
	}

	dto, err := h.cardService.GetByNumber(c.UserContext(), p, query.Number)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return response.Success(c, "Card retrieved successfully", dto)
}

func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	pg := pagination.ParseFromRequest(c)
	page, err := h.cardService.List(c.UserContext(), pg.Page, pg.Size)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return response.Success(c, "Cards retrieved successfully", page)
}

func (h *CardHandler) UpdateCard(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid card ID")
	}
	var input models.UpdateCardInput
	if err := bind(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	dto, err := h.cardService.Update(c.UserContext(), p, id, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return response.Success(c, "Card updated successfully", dto)
}

func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid card ID")
	}

	if err := h.cardService.Delete(c.UserContext(), p, id); err != nil {
		return respondError(c, h.log, err)
	}
	return response.Success(c, "Card deleted successfully", nil)
}
