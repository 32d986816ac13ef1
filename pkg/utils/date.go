package utils

import (
	"fmt"
	"strings"
	"time"
)

// formatos de data aceitos da API do Meta, do mais completo para o mais simples
var remoteDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseRemoteDate interpreta datas no formato da API do Meta e devolve em UTC
func ParseRemoteDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	for _, layout := range remoteDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("formato de data inválido: %q", value)
}

// ParseRemoteDateOrDefault devolve fallback quando a data está ausente ou não pode ser interpretada
func ParseRemoteDateOrDefault(value *string, fallback time.Time) time.Time {
	if value == nil {
		return fallback
	}

	parsed, err := ParseRemoteDate(*value)
	if err != nil {
		return fallback
	}

	return parsed
}
