package importer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valorant-accounts/internal/domain"
)

func testImporter() *Importer {
	return New(zerolog.Nop())
}

func TestExtract_csvRow(t *testing.T) {
	csv := "riotId,hashtag,region,username,password,skins\n" +
		"PlayerName,1234,na,player@email.com,your_password,false\n"

	result, err := testImporter().Extract([]byte(csv), "accounts.csv")
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)

	acc := result.Accounts[0]
	assert.Equal(t, "PlayerName", acc.RiotID)
	assert.Equal(t, "1234", acc.Hashtag)
	assert.Equal(t, domain.RegionNA, acc.Region)
	assert.Equal(t, "player@email.com", acc.Username)
	assert.False(t, acc.HasSkins)
	// Passwords are never recovered from loosely-typed records.
	assert.Empty(t, acc.Password)

	assert.Equal(t, "Found 1 accounts in .csv file", result.Message)
}

func TestExtractCSV_headerOnly(t *testing.T) {
	accounts := extractCSV("riotId,hashtag,region\n")
	assert.Empty(t, accounts)
}

func TestExtract_headerOnlyCSVIsNoAccounts(t *testing.T) {
	_, err := testImporter().Extract([]byte("riotId,hashtag\n"), "empty.csv")
	var noAccounts *NoAccountsError
	require.ErrorAs(t, err, &noAccounts)
	assert.Equal(t, ".csv", noAccounts.Ext)
	assert.Contains(t, err.Error(), ".csv")
}

func TestExtract_invalidJSON(t *testing.T) {
	_, err := testImporter().Extract([]byte("{not json"), "broken.json")
	var invalid *InvalidFormatError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "JSON", invalid.Format)
}

func TestExtract_jsonArray(t *testing.T) {
	data, err := json.Marshal([]map[string]any{
		{"riotid": "Bar#99"},
		{"username": "Second", "tag": "22", "region": "eu"},
	})
	require.NoError(t, err)

	result, err := testImporter().Extract(data, "accounts.json")
	require.NoError(t, err)
	require.Len(t, result.Accounts, 2)

	assert.Equal(t, "Bar", result.Accounts[0].RiotID)
	assert.Equal(t, "99", result.Accounts[0].Hashtag)
	assert.Equal(t, "Second", result.Accounts[1].RiotID)
	assert.Equal(t, domain.RegionEU, result.Accounts[1].Region)
}

func TestExtract_jsonWrapperObject(t *testing.T) {
	data := []byte(`{"accounts":[{"riotid":"Wrapped","hashtag":"11"}]}`)
	result, err := testImporter().Extract(data, "export.json")
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, "Wrapped", result.Accounts[0].RiotID)
}

func TestExtract_jsonSingleObject(t *testing.T) {
	result, err := testImporter().Extract([]byte(`{"riotid":"Solo"}`), "one.json")
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, "Solo", result.Accounts[0].RiotID)
}

func TestExtract_plainText(t *testing.T) {
	text := "some noise Foo#1234 more noise\ncontact: alice@example.com\n"
	result, err := testImporter().Extract([]byte(text), "dump.txt")
	require.NoError(t, err)
	require.Len(t, result.Accounts, 2)

	assert.Equal(t, "Foo", result.Accounts[0].RiotID)
	assert.Equal(t, "1234", result.Accounts[0].Hashtag)
	assert.Equal(t, domain.RegionNA, result.Accounts[0].Region)

	assert.Equal(t, "alice", result.Accounts[1].RiotID)
	assert.Equal(t, "alice@example.com", result.Accounts[1].Username)
	assert.Equal(t, domain.DefaultHashtag, result.Accounts[1].Hashtag)
}

func TestExtractText_emailSkippedWhenLocalPartMatchesUsername(t *testing.T) {
	// Pass 1 yields username "alice"; the email's local part collides.
	accounts := extractText("alice#1234 and alice@example.com")
	require.Len(t, accounts, 1)
	assert.Equal(t, "alice", accounts[0].RiotID)
}

func TestExtract_unknownExtensionFallsBackToText(t *testing.T) {
	payload := append([]byte{0x4d, 0x5a, 0x00, 0x01}, []byte(" Foo#4321 ")...)
	result, err := testImporter().Extract(payload, "accounts.exe")
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, "Foo", result.Accounts[0].RiotID)
}

func TestExtract_binaryScanIsCapped(t *testing.T) {
	// Account text past the 1 MiB cap must not be found.
	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0x00}, 1024*1024))
	buf.WriteString("Hidden#9999")

	_, err := testImporter().Extract(buf.Bytes(), "huge.bin")
	var noAccounts *NoAccountsError
	require.ErrorAs(t, err, &noAccounts)
}

func TestExtract_xmlAccounts(t *testing.T) {
	xml := `<accounts>
  <account>
    <riotid>XmlPlayer</riotid>
    <tag>77</tag>
    <region>eu</region>
    <skins>true</skins>
  </account>
</accounts>`
	result, err := testImporter().Extract([]byte(xml), "export.xml")
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)

	acc := result.Accounts[0]
	assert.Equal(t, "XmlPlayer", acc.RiotID)
	assert.Equal(t, "77", acc.Hashtag)
	assert.Equal(t, domain.RegionEU, acc.Region)
	assert.True(t, acc.HasSkins)
}

func TestExtractXML_userFallback(t *testing.T) {
	xml := `<users><user><name>Fallback</name></user></users>`
	accounts := extractXML(xml)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Fallback", accounts[0].RiotID)
	// XML extractor defaults region to na, unlike the object normalizer.
	assert.Equal(t, domain.RegionNA, accounts[0].Region)
}

func TestExtractXML_skinsLiteralTrueOnly(t *testing.T) {
	xml := `<account><riotid>P</riotid><skins>Y</skins></account>`
	accounts := extractXML(xml)
	require.Len(t, accounts, 1)
	assert.False(t, accounts[0].HasSkins)
}

func TestExtract_deduplicatesWithinBatch(t *testing.T) {
	text := "Foo#1234 other Foo#9999"
	result, err := testImporter().Extract([]byte(text), "dupes.txt")
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	// First occurrence wins.
	assert.Equal(t, "1234", result.Accounts[0].Hashtag)
}

func TestExtract_extensionCaseInsensitive(t *testing.T) {
	result, err := testImporter().Extract([]byte("Foo#1234"), "DUMP.TXT")
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
}

func TestExtract_noDotFilenameUsesFallback(t *testing.T) {
	result, err := testImporter().Extract([]byte("Foo#1234"), "README")
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.True(t, strings.Contains(result.Message, "accounts"))
}
