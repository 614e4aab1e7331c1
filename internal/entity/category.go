package domain

import "github.com/google/uuid"

// Category forms a tree via ParentID (empty for roots). Items link to
// categories through Item.CategoryIDs; there is no reverse reference.
type Category struct {
	ID       string
	Name     string
	ParentID string
}

func NewCategory(name, parentID string) (*Category, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Category{ID: uuid.NewString(), Name: name, ParentID: parentID}, nil
}
