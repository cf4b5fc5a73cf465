package domain

import (
	"time"
)

// Region is the server cluster used by the rank lookup service.
type Region string

const (
	RegionAP    Region = "ap"
	RegionBR    Region = "br"
	RegionEU    Region = "eu"
	RegionKR    Region = "kr"
	RegionLatam Region = "latam"
	RegionNA    Region = "na"
)

// Regions lists every valid region value.
var Regions = []Region{RegionAP, RegionBR, RegionEU, RegionKR, RegionLatam, RegionNA}

// IsValidRegion reports whether s is one of the known region values.
func IsValidRegion(s string) bool {
	for _, r := range Regions {
		if string(r) == s {
			return true
		}
	}
	return false
}

const (
	DefaultHashtag = "0000"
	DefaultRank    = "Unranked"
)

// Account is the canonical unit managed by the application. The ID is
// assigned once at creation and never recomputed.
type Account struct {
	ID            string    `json:"id"`
	RiotID        string    `json:"riotId"`
	Hashtag       string    `json:"hashtag"`
	Username      string    `json:"username"`
	Password      string    `json:"password"`
	Region        Region    `json:"region"`
	HasSkins      bool      `json:"hasSkins"`
	CurrentRank   string    `json:"currentRank"`
	LastRefreshed time.Time `json:"lastRefreshed"`
	Notes         string    `json:"notes,omitempty"`
}

// RankInfo is the display triple produced by rank enrichment.
type RankInfo struct {
	Rank  string `json:"rank"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// RankHistory is one recorded enrichment result for an account.
type RankHistory struct {
	ID        string
	AccountID string
	RiotID    string
	Rank      string
	FetchedAt time.Time
	CreatedAt time.Time
}
