package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate converte uma data AAAA-MM-DD. Texto vazio devolve nil.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("data %q fora do formato AAAA-MM-DD", value)
	}

	return &date, nil
}
