package models

// Page is the list envelope returned by the backoffice API
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// TotalPages returns the number of pages for the current limit
func (p Page[T]) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// All returns every model that must be migrated
func All() []interface{} {
	return []interface{}{
		&Client{},
		&Invoice{},
		&Voucher{},
		&APIKey{},
	}
}
