package handler

import (
	"net/http"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) tagsGet(c *gin.Context) {
	tags, err := h.services.Tag.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}

func (h *Handler) tagsCreate(c *gin.Context) {
	var input dto.CreateTagRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	tag, err := h.services.Tag.Create(c.Request.Context(), input.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}

func (h *Handler) tagsDelete(c *gin.Context) {
	tagID, ok := parseID(c, "tagID")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	if err := h.services.Tag.Delete(c.Request.Context(), tagID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "Tag deleted"))
}
