package config

import "github.com/bnema/plugview/internal/domain/entity"

// Size returns the initial view bounds.
func (c WebViewConfig) Size() entity.Rect {
	return entity.NewRect(c.Width, c.Height)
}

// Constraints returns the window size limits.
func (c WindowConfig) Constraints() entity.SizeConstraints {
	return entity.SizeConstraints{
		MinW: c.MinWidth,
		MinH: c.MinHeight,
		MaxW: c.MaxWidth,
		MaxH: c.MaxHeight,
	}
}
