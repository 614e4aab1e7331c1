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

// ItemHandler covers item administration: creation and restocking. Stock
// decreases only happen through order placement.
type ItemHandler struct {
	items usecase.ItemRepo
}

func NewItemHandler(items usecase.ItemRepo) *ItemHandler {
	return &ItemHandler{items: items}
}

type createItemReq struct {
	Kind        string   `json:"kind" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Price       int64    `json:"price" binding:"gte=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
	CategoryIDs []string `json:"categoryIds"`

	Author   string `json:"author"`
	ISBN     string `json:"isbn"`
	Artist   string `json:"artist"`
	Director string `json:"director"`
	Actor    string `json:"actor"`
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req createItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	it, err := domain.NewItem(domain.ItemKind(req.Kind), req.Name, req.Price, req.Stock)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	it.CategoryIDs = req.CategoryIDs
	switch it.Kind {
	case domain.KindBook:
		it.Book = &domain.BookDetails{Author: req.Author, ISBN: req.ISBN}
	case domain.KindAlbum:
		it.Album = &domain.AlbumDetails{Artist: req.Artist}
	case domain.KindMovie:
		it.Movie = &domain.MovieDetails{Director: req.Director, Actor: req.Actor}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.items.Save(ctx, it); err != nil {
		logging.From(c).Error("item create failed", "error", err)
		c.JSON(statusFor(err), gin.H{"error": "internal"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"itemId": it.ID})
}

type addStockReq struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

func (h *ItemHandler) AddStock(c *gin.Context) {
	var req addStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.items.AddStock(ctx, c.Param("id"), req.Quantity); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ItemHandler) GetItemByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	it, err := h.items.FindOne(ctx, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"itemId": it.ID,
		"kind":   it.Kind,
		"name":   it.Name,
		"price":  it.Price,
		"stock":  it.Stock,
	}
	switch it.Kind {
	case domain.KindBook:
		resp["book"] = it.Book
	case domain.KindAlbum:
		resp["album"] = it.Album
	case domain.KindMovie:
		resp["movie"] = it.Movie
	}
	c.JSON(http.StatusOK, resp)
}
