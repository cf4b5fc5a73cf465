package importer

import (
	"regexp"
	"strings"

	"valorant-accounts/internal/domain"
)

var (
	accountBlockPattern = regexp.MustCompile(`(?is)<account[^>]*>(.*?)</account>`)
	userBlockPattern    = regexp.MustCompile(`(?is)<user[^>]*>(.*?)</user>`)

	xmlTagPatterns = map[string]*regexp.Regexp{}
)

func init() {
	for _, tag := range []string{
		"riotid", "username", "name", "hashtag", "tag", "email",
		"region", "hasskins", "skins", "rank", "currentrank",
	} {
		xmlTagPatterns[tag] = regexp.MustCompile(`(?i)<` + tag + `[^>]*>([^<]*)</` + tag + `>`)
	}
}

// extractXML scans for <account> blocks and falls back to <user> blocks when
// none are found. Full XML parsing is overkill here: the per-tag getter only
// needs flat leaf values inside each block.
func extractXML(content string) []domain.Account {
	var accounts []domain.Account

	for _, m := range accountBlockPattern.FindAllStringSubmatch(content, -1) {
		if acc := accountFromXMLBlock(m[1]); acc != nil {
			accounts = append(accounts, *acc)
		}
	}

	if len(accounts) == 0 {
		for _, m := range userBlockPattern.FindAllStringSubmatch(content, -1) {
			if acc := accountFromXMLBlock(m[1]); acc != nil {
				accounts = append(accounts, *acc)
			}
		}
	}

	return accounts
}

func accountFromXMLBlock(block string) *domain.Account {
	getValue := func(tag string) string {
		if m := xmlTagPatterns[tag].FindStringSubmatch(block); m != nil {
			return strings.TrimSpace(m[1])
		}
		return ""
	}

	riotID := getValue("riotid")
	if riotID == "" {
		riotID = getValue("username")
	}
	if riotID == "" {
		riotID = getValue("name")
	}
	if riotID == "" {
		return nil
	}

	hashtag := getValue("hashtag")
	if hashtag == "" {
		hashtag = getValue("tag")
	}
	if hashtag == "" {
		hashtag = domain.DefaultHashtag
	}

	username := getValue("username")
	if username == "" {
		username = getValue("email")
	}
	if username == "" {
		username = riotID
	}

	region := getValue("region")
	if region == "" {
		region = string(domain.RegionNA)
	}

	rank := getValue("rank")
	if rank == "" {
		rank = getValue("currentrank")
	}
	if rank == "" {
		rank = domain.DefaultRank
	}

	return &domain.Account{
		RiotID:      riotID,
		Hashtag:     hashtag,
		Username:    username,
		Password:    "",
		Region:      domain.Region(region),
		HasSkins:    getValue("hasskins") == "true" || getValue("skins") == "true",
		CurrentRank: rank,
	}
}
