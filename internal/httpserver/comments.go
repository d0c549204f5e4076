package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tienda-shop/tienda/internal/logging"
	"github.com/tienda-shop/tienda/internal/service"
	"github.com/tienda-shop/tienda/internal/transport"
)

type CommentHTTP struct {
	Svc *service.CommentService
}

func (h *CommentHTTP) ListForProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comments.list")

	productID, err := parseID(c)
	if err != nil {
		return err
	}

	// staff see moderated comments too
	comments, err := h.Svc.ListForProduct(ctx, productID, isAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("list_comments_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("list_comments_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list comments")
	}

	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comments.create")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	productID, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.CommentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_comment_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	comment, err := h.Svc.Create(ctx, userID, productID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("create_comment_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_comment_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrForbidden):
			l.Warn("create_comment_failed", "status", 403, "error", err)
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			l.Error("create_comment_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create comment")
		}
	}

	l.Info("create_comment_success", "comment_id", comment.ID)
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHTTP) Edit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comments.edit")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	commentID, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.PatchCommentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("edit_comment_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	comment, err := h.Svc.Edit(ctx, commentID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("edit_comment_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "comment not found")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("edit_comment_failed", "status", 403, "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "not the comment owner")
		case errors.Is(err, service.ErrValidation):
			l.Warn("edit_comment_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("edit_comment_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot edit comment")
		}
	}

	l.Info("edit_comment_success", "comment_id", comment.ID)
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHTTP) Moderate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comments.moderate")

	commentID, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.ModerateCommentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("moderate_comment_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	comment, err := h.Svc.Moderate(ctx, commentID, req.Moderated)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("moderate_comment_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "comment not found")
		}
		l.Error("moderate_comment_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot moderate comment")
	}

	l.Info("moderate_comment_success", "comment_id", comment.ID, "moderated", comment.Moderated)
	return c.JSON(http.StatusOK, comment)
}
