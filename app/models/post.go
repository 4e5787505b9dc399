package models

import "time"

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Views == nil {
		zero := 0
		p.Views = &zero
	}
}

// ViewCount returns the view counter, treating a null counter as zero.
func (p *Post) ViewCount() int {
	if p.Views == nil {
		return 0
	}
	return *p.Views
}
