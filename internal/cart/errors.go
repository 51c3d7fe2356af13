package cart

import pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"

var (
	ErrInvalidQuantity = pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1")
	ErrLineNotFound    = pkgerrors.New(pkgerrors.CodeLineNotFound, "cart line not found")
	ErrInvalidPrice    = pkgerrors.New(pkgerrors.CodeValidation, "product price must not be negative")
	ErrInvalidProduct  = pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	ErrDuplicateLine   = pkgerrors.New(pkgerrors.CodeValidation, "duplicate cart line")
	ErrVersionMismatch = pkgerrors.New(pkgerrors.CodeStateConflict, "cart changed since it was read")
)
