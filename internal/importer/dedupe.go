package importer

import "valorant-accounts/internal/domain"

// Dedupe keeps only the first occurrence of each distinct riot ID.
// Comparison is exact and case-sensitive; the application-level merge into
// existing accounts uses a looser rule and lives elsewhere on purpose.
func Dedupe(accounts []domain.Account) []domain.Account {
	seen := make(map[string]struct{}, len(accounts))
	var out []domain.Account
	for _, acc := range accounts {
		if _, ok := seen[acc.RiotID]; ok {
			continue
		}
		seen[acc.RiotID] = struct{}{}
		out = append(out, acc)
	}
	return out
}
