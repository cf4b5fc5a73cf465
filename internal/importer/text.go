package importer

import (
	"regexp"
	"strings"

	"valorant-accounts/internal/domain"
)

var (
	riotIDPattern = regexp.MustCompile(`([a-zA-Z0-9_-]+)#([a-zA-Z0-9]+)`)
	emailPattern  = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
)

// extractText scans unstructured text for account-shaped strings. Used for
// .txt files and as the best-effort fallback for unrecognized binaries.
// Pass 1 collects every name#tag occurrence; pass 2 collects emails whose
// local part does not already match a pass-1 username.
func extractText(content string) []domain.Account {
	var accounts []domain.Account

	for _, m := range riotIDPattern.FindAllStringSubmatch(content, -1) {
		accounts = append(accounts, domain.Account{
			RiotID:      m[1],
			Hashtag:     m[2],
			Username:    m[1],
			Password:    "",
			Region:      domain.RegionNA,
			HasSkins:    false,
			CurrentRank: domain.DefaultRank,
		})
	}

	for _, m := range emailPattern.FindAllStringSubmatch(content, -1) {
		email := m[1]
		localPart := strings.Split(email, "@")[0]

		seen := false
		for _, acc := range accounts {
			if acc.Username == localPart {
				seen = true
				break
			}
		}
		if seen {
			continue
		}

		accounts = append(accounts, domain.Account{
			RiotID:      localPart,
			Hashtag:     domain.DefaultHashtag,
			Username:    email,
			Password:    "",
			Region:      domain.RegionNA,
			HasSkins:    false,
			CurrentRank: domain.DefaultRank,
		})
	}

	return accounts
}
