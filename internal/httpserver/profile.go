package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tienda-shop/tienda/internal/logging"
	"github.com/tienda-shop/tienda/internal/service"
	"github.com/tienda-shop/tienda/internal/transport"
)

type ProfileHTTP struct {
	Svc *service.AccountService
}

func (h *ProfileHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.Svc.GetProfile(ctx, userID)
	if err != nil {
		l.Error("get_profile_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load profile")
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transport.ProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	profile, err := h.Svc.UpdateProfile(ctx, userID, req)
	if err != nil {
		l.Error("update_profile_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update profile")
	}

	l.Info("update_profile_success", "profile_id", profile.ID)
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHTTP) GetAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get_address")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	address, err := h.Svc.GetAddress(ctx, userID)
	if err != nil {
		l.Error("get_address_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load address")
	}
	return c.JSON(http.StatusOK, address)
}

func (h *ProfileHTTP) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update_address")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_address_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	address, err := h.Svc.UpdateAddress(ctx, userID, req)
	if err != nil {
		l.Error("update_address_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update address")
	}

	l.Info("update_address_success")
	return c.JSON(http.StatusOK, address)
}

func (h *ProfileHTTP) GetCard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get_card")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	card, err := h.Svc.GetCard(ctx, userID)
	if err != nil {
		l.Error("get_card_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load card")
	}
	return c.JSON(http.StatusOK, card)
}

func (h *ProfileHTTP) UpdateCard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update_card")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transport.CardRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_card_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	card, err := h.Svc.UpdateCard(ctx, userID, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_card_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("update_card_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update card")
	}

	l.Info("update_card_success")
	return c.JSON(http.StatusOK, card)
}
