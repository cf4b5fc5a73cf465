package importer

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	"valorant-accounts/internal/domain"
)

// excelColumns holds resolved column indexes for one worksheet header row.
// -1 means the role has no column.
type excelColumns struct {
	username int
	riotID   int
	hashtag  int
	password int
	region   int
	rank     int
	skins    int
}

func resolveColumns(headers []string) excelColumns {
	findIndex := func(substrs ...string) int {
		for i, h := range headers {
			for _, sub := range substrs {
				if strings.Contains(h, sub) {
					return i
				}
			}
		}
		return -1
	}
	return excelColumns{
		username: findIndex("username", "user"),
		riotID:   findIndex("gameid", "riotid", "riot id", "game id"),
		hashtag:  findIndex("hashtag", "tag", "#"),
		password: findIndex("password", "pass", "pwd"),
		region:   findIndex("region", "server"),
		rank:     findIndex("rank", "tier"),
		skins:    findIndex("skin", "cosmetic"),
	}
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// extractExcel reads every worksheet independently and concatenates the
// results. Column roles are resolved by substring match against the
// lowercased header row, so "Game ID" and "riotid" both land on the riot ID
// role.
func extractExcel(data []byte) ([]domain.Account, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &InvalidFormatError{Format: "Excel", Err: err}
	}
	defer f.Close()

	var accounts []domain.Account
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, &InvalidFormatError{Format: "Excel", Err: err}
		}
		accounts = append(accounts, extractSheet(rows)...)
	}
	return accounts, nil
}

func extractSheet(rows [][]string) []domain.Account {
	var accounts []domain.Account
	if len(rows) < 2 {
		return accounts
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(h)
	}
	cols := resolveColumns(headers)

	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		username := strings.TrimSpace(cell(row, cols.username))
		riotID := strings.TrimSpace(cell(row, cols.riotID))
		hashtag := domain.DefaultHashtag

		if riotID == "" && username != "" {
			if strings.Contains(username, "#") {
				riotID, hashtag = splitCombined(username)
			} else {
				riotID = username
			}
		} else if strings.Contains(riotID, "#") {
			riotID, hashtag = splitCombined(riotID)
		}

		// An explicit hashtag column always overrides a parsed one.
		if cols.hashtag >= 0 {
			v := cell(row, cols.hashtag)
			if v == "" {
				v = domain.DefaultHashtag
			}
			hashtag = strings.TrimSpace(strings.Replace(v, "#", "", 1))
		}

		if riotID == "" {
			continue
		}
		if hashtag == "" {
			hashtag = domain.DefaultHashtag
		}

		region := string(domain.RegionAP)
		if cols.region >= 0 {
			if v := cell(row, cols.region); v != "" {
				region = strings.ToLower(v)
			}
		}

		hasSkins := false
		if cols.skins >= 0 {
			hasSkins = strings.ToUpper(cell(row, cols.skins)) == "Y"
		}

		rank := domain.DefaultRank
		if cols.rank >= 0 {
			if v := cell(row, cols.rank); v != "" {
				rank = v
			}
		}

		if username == "" {
			username = riotID
		}

		accounts = append(accounts, domain.Account{
			RiotID:      riotID,
			Hashtag:     hashtag,
			Username:    username,
			Password:    strings.TrimSpace(cell(row, cols.password)),
			Region:      domain.Region(region),
			HasSkins:    hasSkins,
			CurrentRank: rank,
		})
	}

	return accounts
}
