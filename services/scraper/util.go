package scraper

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
)

const maxScrapeBytes = 4 << 20

func copyLimited(dst io.Writer, src io.Reader) (int64, error) {
	return io.Copy(dst, io.LimitReader(src, maxScrapeBytes))
}

// shortHash gives results without upstream identifiers a stable short ID so
// repeated scrapes of the same item produce the same feed entry.
func shortHash(parts ...string) string {
	h := sha1.New()
	for _, p := range parts {
		io.WriteString(h, p)
		io.WriteString(h, "\x00")
	}
	return hex.EncodeToString(h.Sum(nil))[:9]
}
