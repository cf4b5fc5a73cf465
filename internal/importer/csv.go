package importer

import (
	"strings"

	"valorant-accounts/internal/domain"
)

// extractCSV parses a naive comma-separated table: first non-blank line is
// the header, every later line is zipped against it. Quoted fields are not
// supported, so a literal comma inside a value splits the value.
func extractCSV(content string) []domain.Account {
	var accounts []domain.Account

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return accounts
	}

	headers := strings.Split(lines[0], ",")
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		rec := Record{}
		for i, header := range headers {
			if i < len(values) {
				if v := strings.TrimSpace(values[i]); v != "" {
					rec[header] = v
				}
			}
		}
		if acc := Normalize(rec); acc != nil {
			accounts = append(accounts, *acc)
		}
	}

	return accounts
}
