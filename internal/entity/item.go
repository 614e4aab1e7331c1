package domain

import "github.com/google/uuid"

type ItemKind string

const (
	KindBook  ItemKind = "BOOK"
	KindAlbum ItemKind = "ALBUM"
	KindMovie ItemKind = "MOVIE"
)

type BookDetails struct {
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

type AlbumDetails struct {
	Artist string `json:"artist"`
}

type MovieDetails struct {
	Director string `json:"director"`
	Actor    string `json:"actor"`
}

// Item is a tagged union over the product kinds: Kind selects which of the
// detail structs is populated; the common fields apply to every kind.
// Stock is mutated only through AddStock/RemoveStock.
type Item struct {
	ID          string
	Kind        ItemKind
	Name        string
	Price       int64
	Stock       int
	CategoryIDs []string

	Book  *BookDetails
	Album *AlbumDetails
	Movie *MovieDetails
}

func NewItem(kind ItemKind, name string, price int64, stock int) (*Item, error) {
	switch kind {
	case KindBook, KindAlbum, KindMovie:
	default:
		return nil, ErrInvalidKind
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInsufficientStock
	}
	return &Item{ID: uuid.NewString(), Kind: kind, Name: name, Price: price, Stock: stock}, nil
}

// AddStock increases the stock quantity. No upper bound.
func (i *Item) AddStock(q int) {
	i.Stock += q
}

// RemoveStock decreases the stock quantity. All-or-nothing: when the
// result would go negative the stock is left untouched.
func (i *Item) RemoveStock(q int) error {
	if i.Stock-q < 0 {
		return ErrInsufficientStock
	}
	i.Stock -= q
	return nil
}
