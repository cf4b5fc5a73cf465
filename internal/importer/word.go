package importer

import (
	"archive/zip"
	"bytes"
	"errors"
	"regexp"
	"strings"

	"valorant-accounts/internal/domain"
)

const wordDocumentXMLPath = "word/document.xml"

var (
	// wtTag matches <w:t>text</w:t> including attributed forms like
	// <w:t xml:space="preserve">.
	wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

	wordTagPattern   = regexp.MustCompile(`([a-zA-Z0-9._-]+)#([a-zA-Z0-9]{3,5})`)
	wordEmailPattern = regexp.MustCompile(`([a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)

	wordDelimiters = []string{"\t", ",", "|", " "}
)

var errNoTextContent = errors.New("No text content found in Word document")

// wordRawText extracts plain text from a .docx buffer, one line per
// paragraph. DOCX is a ZIP holding word/document.xml (OOXML); collecting the
// <w:t> runs inside each <w:p> paragraph is enough for line-oriented
// scraping. Legacy binary .doc files are not ZIPs and fail here.
func wordRawText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errNoTextContent
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != wordDocumentXMLPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", errNoTextContent
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			_ = rc.Close()
			return "", errNoTextContent
		}
		_ = rc.Close()
		docXML = buf.Bytes()
		break
	}
	if docXML == nil {
		return "", errNoTextContent
	}

	var b strings.Builder
	for _, para := range strings.Split(string(docXML), "</w:p>") {
		runs := wtTag.FindAllStringSubmatch(para, -1)
		if len(runs) == 0 {
			continue
		}
		for _, r := range runs {
			b.WriteString(r[1])
		}
		b.WriteByte('\n')
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", errNoTextContent
	}
	return text, nil
}

// extractWord parses account lines out of a Word document. Each non-header
// line is delimiter-sniffed (tab, comma, pipe, space, in that order); lines
// without a usable delimiter fall back to name#tag and email regexes.
func extractWord(data []byte) ([]domain.Account, error) {
	text, err := wordRawText(data)
	if err != nil {
		return nil, &InvalidFormatError{Format: "Word", Err: err}
	}

	var accounts []domain.Account

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		if strings.Contains(lower, "username") ||
			strings.Contains(lower, "account") ||
			strings.Contains(lower, "riotid") ||
			len(line) < 3 {
			continue
		}

		var parts []string
		for _, delim := range wordDelimiters {
			var candidate []string
			for _, p := range strings.Split(line, delim) {
				if t := strings.TrimSpace(p); t != "" {
					candidate = append(candidate, t)
				}
			}
			if len(candidate) >= 2 {
				parts = candidate
				break
			}
		}

		if len(parts) < 2 {
			if m := wordTagPattern.FindStringSubmatch(line); m != nil {
				accounts = append(accounts, domain.Account{
					RiotID:      m[1],
					Hashtag:     m[2],
					Username:    m[1],
					Password:    "",
					Region:      domain.RegionNA,
					HasSkins:    false,
					CurrentRank: domain.DefaultRank,
				})
				continue
			}
			if m := wordEmailPattern.FindStringSubmatch(line); m != nil {
				localPart := strings.Split(m[1], "@")[0]
				accounts = append(accounts, domain.Account{
					RiotID:      localPart,
					Hashtag:     domain.DefaultHashtag,
					Username:    m[1],
					Password:    "",
					Region:      domain.RegionNA,
					HasSkins:    false,
					CurrentRank: domain.DefaultRank,
				})
				continue
			}
		}

		if len(parts) < 1 {
			continue
		}

		riotID := parts[0]
		hashtag := domain.DefaultHashtag

		if strings.Contains(parts[0], "#") {
			riotID, hashtag = splitCombined(parts[0])
		} else if len(parts) >= 2 {
			hashtag = strings.TrimSpace(strings.Replace(parts[1], "#", "", 1))
			if hashtag == "" {
				hashtag = domain.DefaultHashtag
			}
		}

		region := string(domain.RegionNA)
		if len(parts) >= 3 {
			region = strings.ToLower(parts[2])
		}

		hasSkins := false
		if len(parts) >= 4 {
			lower := strings.ToLower(parts[3])
			hasSkins = strings.Contains(lower, "true") || strings.Contains(lower, "yes")
		}

		rank := domain.DefaultRank
		if len(parts) >= 5 {
			rank = parts[4]
		}

		accounts = append(accounts, domain.Account{
			RiotID:      riotID,
			Hashtag:     hashtag,
			Username:    riotID,
			Password:    "",
			Region:      domain.Region(region),
			HasSkins:    hasSkins,
			CurrentRank: rank,
		})
	}

	return accounts, nil
}
