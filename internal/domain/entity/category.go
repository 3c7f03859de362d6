package entity

import "time"

// Category agrupa productos. El nombre es único; un producto puede existir
// sin categoría.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
