package importer

import (
	"encoding/json"

	"valorant-accounts/internal/domain"
)

// extractJSON handles a bare array of records, a wrapper object with an
// "accounts" array, or a single record object.
func extractJSON(data []byte) ([]domain.Account, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &InvalidFormatError{Format: "JSON"}
	}

	var accounts []domain.Account
	switch v := parsed.(type) {
	case []any:
		accounts = normalizeItems(v)
	case map[string]any:
		if list, ok := v["accounts"].([]any); ok {
			accounts = normalizeItems(list)
		} else if acc := Normalize(Record(v)); acc != nil {
			accounts = append(accounts, *acc)
		}
	}
	return accounts, nil
}

func normalizeItems(items []any) []domain.Account {
	var accounts []domain.Account
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if acc := Normalize(Record(obj)); acc != nil {
			accounts = append(accounts, *acc)
		}
	}
	return accounts
}
