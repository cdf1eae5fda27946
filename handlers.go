package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RegisterRequest representa a requisição de registro de usuário
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Address  *string `json:"address"`
	Role     string  `json:"role"`
}

// CategoryRequest representa a requisição de criação de categoria
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ItemRequest representa a requisição de criação/atualização de item
type ItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	ImageURL    string  `json:"image_url"`
	Quantity    int     `json:"quantity"`
	CategoryID  string  `json:"category_id" binding:"required"`
	SellerID    string  `json:"seller_id" binding:"required"`
}

// OrderRequest representa a requisição de criação/atualização de pedido
type OrderRequest struct {
	BuyerID string `json:"buyer_id" binding:"required"`
	CartID  string `json:"cart_id" binding:"required"`
	ItemID  string `json:"item_id" binding:"required"`
}

// CartRequest representa a requisição de criação/atualização de entrada do carrinho
type CartRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// CommentRequest representa a requisição de criação/atualização de comentário
type CommentRequest struct {
	Text      string  `json:"text" binding:"required"`
	ItemID    string  `json:"item_id" binding:"required"`
	UserID    string  `json:"user_id" binding:"required"`
	MentionID *string `json:"mention_id"`
}

// respondError mapeia os erros de negócio para o status HTTP correspondente
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// UserUseCaseInterface define a interface do use case de usuários
type UserUseCaseInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// UserHandler contém os handlers HTTP de usuários
type UserHandler struct {
	useCase UserUseCaseInterface
}

// NewUserHandler cria uma nova instância de UserHandler
func NewUserHandler(useCase UserUseCaseInterface) *UserHandler {
	return &UserHandler{useCase: useCase}
}

// Register registra um novo usuário
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.useCase.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "role": user.Role})
}

// ListUsers retorna todos os usuários
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.useCase.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CategoryUseCaseInterface define a interface do use case de categorias
type CategoryUseCaseInterface interface {
	CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// CategoryHandler contém os handlers HTTP de categorias
type CategoryHandler struct {
	useCase CategoryUseCaseInterface
}

// NewCategoryHandler cria uma nova instância de CategoryHandler
func NewCategoryHandler(useCase CategoryUseCaseInterface) *CategoryHandler {
	return &CategoryHandler{useCase: useCase}
}

// CreateCategory cria uma nova categoria
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.useCase.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// ListCategories retorna todas as categorias
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ItemUseCaseInterface define a interface do use case de itens
type ItemUseCaseInterface interface {
	CreateItem(ctx context.Context, req ItemRequest) (*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItems(ctx context.Context) ([]Item, error)
	UpdateItem(ctx context.Context, id string, req ItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// ItemHandler contém os handlers HTTP de itens
type ItemHandler struct {
	useCase ItemUseCaseInterface
}

// NewItemHandler cria uma nova instância de ItemHandler
func NewItemHandler(useCase ItemUseCaseInterface) *ItemHandler {
	return &ItemHandler{useCase: useCase}
}

// CreateItem cria um novo item
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.useCase.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetItem busca um item pelo ID
func (h *ItemHandler) GetItem(c *gin.Context) {
	item, err := h.useCase.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListItems retorna todos os itens
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.useCase.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdateItem substitui os campos mutáveis de um item
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.useCase.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem remove um item
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.useCase.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

// OrderUseCaseInterface define a interface do use case de pedidos
type OrderUseCaseInterface interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	UpdateOrder(ctx context.Context, id string, req OrderRequest) (*Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// OrderHandler contém os handlers HTTP de pedidos
type OrderHandler struct {
	useCase OrderUseCaseInterface
	tracer  trace.Tracer
}

// NewOrderHandler cria uma nova instância de OrderHandler
func NewOrderHandler(useCase OrderUseCaseInterface, tracer trace.Tracer) *OrderHandler {
	return &OrderHandler{useCase: useCase, tracer: tracer}
}

// CreateOrder cria um pedido e inicia o checkout no gateway de pagamento
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "create_order")
	defer span.End()

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("buyer_id", req.BuyerID),
		attribute.String("item_id", req.ItemID),
	)

	order, err := h.useCase.CreateOrder(ctx, req)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	span.SetAttributes(attribute.String("order_id", order.ID))
	c.JSON(http.StatusOK, order)
}

// GetOrder busca um pedido pelo ID
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.useCase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders retorna todos os pedidos
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.useCase.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrder sobrescreve comprador e item de um pedido
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.useCase.UpdateOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder remove um pedido
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.useCase.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

// CartUseCaseInterface define a interface do use case do carrinho
type CartUseCaseInterface interface {
	CreateCartEntry(ctx context.Context, req CartRequest) (*CartEntry, error)
	GetCartEntry(ctx context.Context, id string) (*CartEntry, error)
	ListCartEntries(ctx context.Context) ([]CartEntry, error)
	UpdateCartEntry(ctx context.Context, id string, req CartRequest) (*CartEntry, error)
	DeleteCartEntry(ctx context.Context, id string) error
}

// CartHandler contém os handlers HTTP do carrinho
type CartHandler struct {
	useCase CartUseCaseInterface
}

// NewCartHandler cria uma nova instância de CartHandler
func NewCartHandler(useCase CartUseCaseInterface) *CartHandler {
	return &CartHandler{useCase: useCase}
}

// CreateCartEntry adiciona um item ao carrinho
func (h *CartHandler) CreateCartEntry(c *gin.Context) {
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.useCase.CreateCartEntry(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetCartEntry busca uma entrada do carrinho pelo ID
func (h *CartHandler) GetCartEntry(c *gin.Context) {
	entry, err := h.useCase.GetCartEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ListCartEntries retorna todas as entradas de carrinho
func (h *CartHandler) ListCartEntries(c *gin.Context) {
	entries, err := h.useCase.ListCartEntries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// UpdateCartEntry sobrescreve usuário e item de uma entrada do carrinho
func (h *CartHandler) UpdateCartEntry(c *gin.Context) {
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.useCase.UpdateCartEntry(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteCartEntry remove uma entrada do carrinho
func (h *CartHandler) DeleteCartEntry(c *gin.Context) {
	if err := h.useCase.DeleteCartEntry(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart entry deleted"})
}

// CommentUseCaseInterface define a interface do use case de comentários
type CommentUseCaseInterface interface {
	CreateComment(ctx context.Context, req CommentRequest) (*Comment, error)
	GetComment(ctx context.Context, id string) (*Comment, error)
	ListComments(ctx context.Context) ([]Comment, error)
	UpdateComment(ctx context.Context, id string, req CommentRequest) (*Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// CommentHandler contém os handlers HTTP de comentários
type CommentHandler struct {
	useCase CommentUseCaseInterface
}

// NewCommentHandler cria uma nova instância de CommentHandler
func NewCommentHandler(useCase CommentUseCaseInterface) *CommentHandler {
	return &CommentHandler{useCase: useCase}
}

// CreateComment cria um comentário em um item
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.useCase.CreateComment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// GetComment busca um comentário pelo ID
func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, err := h.useCase.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ListComments retorna todos os comentários
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.useCase.ListComments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// UpdateComment sobrescreve usuário, item e texto de um comentário
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.useCase.UpdateComment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment remove um comentário
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.useCase.DeleteComment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// HealthCheck verifica a saúde do serviço
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "marketplace-api",
	})
}
