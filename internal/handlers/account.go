package handlers

import (
	"marketplace/internal/models"
	"marketplace/internal/services/account"
	"marketplace/internal/utils/pagination"
	"marketplace/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountService account.Service
	log            *zap.Logger
}

func NewAccountHandler(accountService account.Service, log *zap.Logger) *AccountHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountHandler{accountService: accountService, log: log}
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var input models.CreateAccountInput
	if err := bind(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	created, err := h.accountService.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return response.Created(c, "Account created successfully", created)
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid account ID")
	}

	dto, err := h.accountService.GetByID(c.UserContext(), p, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return response.Success(c, "Account retrieved successfully", dto)
}

func (h *AccountHandler) SearchAccount(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	var query models.AccountSearch
	if err := bindQuery(c, &query); err != nil {
		return respondError(c, h.log, err)
	}

	dto, err := h.accountService.GetByEmail(c.UserContext(), p, query.Email)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return response.Success(c, "Account retrieved successfully", dto)
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	pg := pagination.ParseFromRequest(c)
	page, err := h.accountService.List(c.UserContext(), pg.Page, pg.Size)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return response.Success(c, "Accounts retrieved successfully", page)
}

func (h *AccountHandler) UpdateAccount(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid account ID")
	}
	var input models.UpdateAccountInput
	if err := bind(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	dto, err := h.accountService.Update(c.UserContext(), p, id, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return response.Success(c, "Account updated successfully", dto)
}

func (h *AccountHandler) DeleteAccount(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid account ID")
	}
	if err := h.accountService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return response.Success(c, "Account deleted successfully", nil)
}
