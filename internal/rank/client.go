package rank

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"valorant-accounts/internal/config"
	"valorant-accounts/internal/constants"
	"valorant-accounts/internal/domain"
)

const (
	fetchFailed    = "Fetch Failed"
	accountPrivate = "Account Private"

	// upstreamErrSentinel is the error text the lookup service returns in
	// its payload instead of a non-200 status.
	upstreamErrSentinel = "Errore nel recupero dei dati"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Client fetches competitive ranks from the external lookup service.
type Client struct {
	baseURL string
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.RankAPIBase, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

type rankPayload struct {
	CurrentRank string `json:"current_rank"`
}

// FetchRank resolves the display triple for one account. Lookup failures
// degrade to the "Fetch Failed" state instead of an error; the returned
// error is reserved for context cancellation.
func (c *Client) FetchRank(ctx context.Context, acc domain.Account) (domain.RankInfo, error) {
	rankStr, err := c.fetchRankString(ctx, acc)
	if err != nil {
		return domain.RankInfo{}, err
	}
	return Info(rankStr), nil
}

// Info builds the display triple for a rank string via the static tables.
func Info(rankStr string) domain.RankInfo {
	return domain.RankInfo{
		Rank:  rankStr,
		Icon:  "./icons/" + Icon(rankStr),
		Color: Color(rankStr),
	}
}

func (c *Client) fetchRankString(ctx context.Context, acc domain.Account) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// The lookup service rejects names with embedded whitespace.
	cleanRiotID := whitespacePattern.ReplaceAllString(acc.RiotID, "")
	reqURL := fmt.Sprintf("%s/%s/%s/%s",
		c.baseURL,
		url.PathEscape(cleanRiotID),
		url.PathEscape(acc.Hashtag),
		acc.Region,
	)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(reqURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("User-Agent", userAgent)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoDeadline(req, resp, time.Now().Add(constants.ExternalAPITimeout))
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("url", reqURL).Msg("rank lookup request failed")
		return fetchFailed, nil
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode()).Str("url", reqURL).Msg("rank lookup returned non-200")
		return fetchFailed, nil
	}

	rankStr := c.interpretBody(resp)
	if strings.Contains(rankStr, upstreamErrSentinel) {
		rankStr = fetchFailed
	}
	return rankStr, nil
}

// interpretBody accepts either a bare rank string or a JSON object exposing
// current_rank.
func (c *Client) interpretBody(resp *fasthttp.Response) string {
	body := resp.Body()
	contentType := string(resp.Header.ContentType())

	if strings.Contains(contentType, "application/json") {
		var payload rankPayload
		if err := json.Unmarshal(body, &payload); err != nil || payload.CurrentRank == "" {
			return fetchFailed
		}
		return payload.CurrentRank
	}
	return strings.TrimSpace(string(body))
}
