package domain

import (
	"fmt"
	"time"
)

// InsigthFilters delimita o período consultado na fonte de dados
type InsigthFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// HasPeriod indica se as duas datas foram informadas
func (f *InsigthFilters) HasPeriod() bool {
	return f != nil &&
		f.StartDate != nil && !f.StartDate.IsZero() &&
		f.EndDate != nil && !f.EndDate.IsZero()
}

// Validate rejeita períodos incompletos ou invertidos
func (f *InsigthFilters) Validate() error {
	if f == nil {
		return nil
	}

	hasStart := f.StartDate != nil && !f.StartDate.IsZero()
	hasEnd := f.EndDate != nil && !f.EndDate.IsZero()

	if hasStart != hasEnd {
		return fmt.Errorf("start_date and end_date must be informed together")
	}

	if hasStart && f.EndDate.Before(*f.StartDate) {
		return fmt.Errorf("end_date %s is before start_date %s", f.EndDate.Format(time.DateOnly), f.StartDate.Format(time.DateOnly))
	}

	return nil
}

// Key identifica o período em chaves de cache
func (f *InsigthFilters) Key() string {
	if !f.HasPeriod() {
		return "default"
	}
	return f.StartDate.Format(time.DateOnly) + "_" + f.EndDate.Format(time.DateOnly)
}
