package browser

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// CookieRecord is one authentication record from the exported cookie file.
//
// Browser exports carry many more fields (sameSite, expirationDate, ...);
// decoding through this struct strips everything outside the minimal set
// before injection.
type CookieRecord struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// LoadCookies reads a JSON array of cookie records from path.
func LoadCookies(path string) ([]CookieRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cookie file: %w", err)
	}

	var records []CookieRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("cookie file %s: %w", path, err)
	}

	out := records[:0]
	for _, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		if r.Path == "" {
			r.Path = "/"
		}
		out = append(out, r)
	}
	return out, nil
}
