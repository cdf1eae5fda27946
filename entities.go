package main

import "time"

// Papéis conhecidos. O campo role é texto livre, estes são os dois valores
// que o serviço trata de forma diferente.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// User representa um usuário do marketplace (comprador ou vendedor)
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Password  string    `json:"password" db:"password"`
	Address   *string   `json:"address" db:"address"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewUser cria uma nova instância de User. Role vazio vira "buyer".
func NewUser(id, name, password string, address *string, role string) *User {
	if role == "" {
		role = RoleBuyer
	}
	return &User{
		ID:        id,
		Name:      name,
		Password:  password,
		Address:   address,
		Role:      role,
		CreatedAt: time.Now(),
	}
}

// Category representa uma categoria de itens
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewCategory cria uma nova instância de Category
func NewCategory(id, name string) *Category {
	return &Category{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// Item representa um produto listado por um vendedor
type Item struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Quantity    int       `json:"quantity" db:"quantity"`
	CategoryID  string    `json:"category_id" db:"category_id"`
	SellerID    string    `json:"seller_id" db:"seller_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NewItem cria uma nova instância de Item
func NewItem(id, name, description string, price float64, imageURL string, quantity int, categoryID, sellerID string) *Item {
	return &Item{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		Quantity:    quantity,
		CategoryID:  categoryID,
		SellerID:    sellerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// CartEntry representa um item pendente no carrinho de um comprador
type CartEntry struct {
	ID        string    `json:"id" db:"id"`
	ItemID    string    `json:"item_id" db:"item_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewCartEntry cria uma nova instância de CartEntry
func NewCartEntry(id, itemID, userID string, quantity int) *CartEntry {
	return &CartEntry{
		ID:        id,
		ItemID:    itemID,
		UserID:    userID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Order representa o compromisso de compra de um item por um comprador.
// PaymentToken guarda o token de checkout retornado pelo gateway; fica vazio
// quando o gateway não respondeu na criação do pedido.
type Order struct {
	ID           string    `json:"id" db:"id"`
	BuyerID      string    `json:"buyer_id" db:"buyer_id"`
	CartID       string    `json:"cart_id" db:"cart_id"`
	ItemID       string    `json:"item_id" db:"item_id"`
	PaymentToken string    `json:"payment_token" db:"payment_token"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewOrder cria uma nova instância de Order
func NewOrder(id, buyerID, cartID, itemID string) *Order {
	return &Order{
		ID:        id,
		BuyerID:   buyerID,
		CartID:    cartID,
		ItemID:    itemID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Comment representa um comentário em um item, com menção opcional a outro usuário
type Comment struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	ItemID    string    `json:"item_id" db:"item_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	MentionID *string   `json:"mention_id" db:"mention_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewComment cria uma nova instância de Comment
func NewComment(id, text, itemID, userID string, mentionID *string) *Comment {
	return &Comment{
		ID:        id,
		Text:      text,
		ItemID:    itemID,
		UserID:    userID,
		MentionID: mentionID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
