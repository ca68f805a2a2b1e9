package domain

import "strings"

const instagramMarker = "instagram.com/"

// InstagramHandle extracts the account handle from a profile URL such as
// "https://www.instagram.com/someone?utm_source=x". URLs without "instagram.com/" yield "".
func InstagramHandle(url string) string {
	_, rest, ok := strings.Cut(url, instagramMarker)
	if !ok {
		return ""
	}
	rest, _, _ = strings.Cut(rest, "?")
	rest, _, _ = strings.Cut(rest, "#")
	rest = strings.TrimLeft(rest, "/")
	handle, _, _ := strings.Cut(rest, "/")
	return handle
}
