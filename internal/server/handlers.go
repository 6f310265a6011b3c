package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/MosinFAM/comment-board/internal/models"
	"github.com/MosinFAM/comment-board/internal/render"
	"github.com/MosinFAM/comment-board/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler обслуживает маршруты /pages
type Handler struct {
	Stores   *storage.Holder
	Renderer render.Renderer
	Log      *zap.Logger
}

func pageURL(pageID string) string {
	return "/pages/" + url.PathEscape(pageID)
}

// statusFor переводит ошибку хранилища в HTTP-статус
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrPageNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetComments - постоянный редирект на страницу, существует она или нет
func (h *Handler) GetComments(c *gin.Context) {
	c.Redirect(http.StatusPermanentRedirect, pageURL(c.Param("pageId")))
}

// GetPage отдаёт HTML-страницу с комментариями
func (h *Handler) GetPage(c *gin.Context) {
	pageID := c.Param("pageId")

	store, err := h.Stores.Get()
	if err != nil {
		h.Log.Error("store unavailable", zap.String("page", pageID), zap.Error(err))
		c.Status(statusFor(err))
		return
	}
	comments, err := store.GetComments(pageID)
	if err != nil {
		c.Status(statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := h.Renderer.Render(&buf, pageID, comments); err != nil {
		h.Log.Error("rendering page", zap.String("page", pageID), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// PostComment добавляет комментарий из формы; страница создаётся при необходимости
func (h *Handler) PostComment(c *gin.Context) {
	pageID := c.Param("pageId")

	var form models.Comment
	if err := c.ShouldBind(&form); err != nil {
		h.Log.Warn("bad comment form", zap.String("page", pageID), zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	h.Stores.GetOrInit().AddComment(pageID, form.User, form.Body)
	c.Redirect(http.StatusSeeOther, pageURL(pageID))
}

// PostPage создаёт страницу; идентификатор - всё тело запроса
func (h *Handler) PostPage(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.Log.Warn("reading page id", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}
	pageID := string(body)

	h.Stores.GetOrInit().EnsurePage(pageID)
	c.Redirect(http.StatusSeeOther, pageURL(pageID))
}

// Health - проверка живости
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
