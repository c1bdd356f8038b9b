package accessCode

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Access codes are mailed to club managers and pasted back into the site.
// A code is the club slug and the club's secret joined with a pipe, base64
// encoded so it survives URLs and mail clients.

func GenerateCode(slug, secret string) string {
	code := fmt.Sprintf("%s|%s", slug, secret)
	return base64.StdEncoding.EncodeToString([]byte(code))
}

func Decode(code string) (slug, secret string, err error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	res := strings.Split(string(decodedBytes), "|")
	if len(res) != 2 {
		return "", "", fmt.Errorf("not correct format")
	}
	return res[0], res[1], nil
}
