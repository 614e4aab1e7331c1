package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
	"github.com/juhyeon1114/jpashop/internal/logging"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

type MemberHandler struct {
	register *usecase.RegisterMember
	query    usecase.MemberRepo
}

func NewMemberHandler(register *usecase.RegisterMember, query usecase.MemberRepo) *MemberHandler {
	return &MemberHandler{register: register, query: query}
}

type registerMemberReq struct {
	Name    string         `json:"name" binding:"required"`
	Address domain.Address `json:"address"`
}

func (h *MemberHandler) Register(c *gin.Context) {
	var req registerMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	id, err := h.register.Execute(ctx, usecase.RegisterMemberInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		logging.From(c).Warn("member registration failed", "error", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"memberId": id})
}

func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	m, err := h.query.FindOne(ctx, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"memberId": m.ID,
		"name":     m.Name,
		"address":  m.Address,
	})
}
