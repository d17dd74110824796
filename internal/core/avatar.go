package core

import "net/url"

// DefaultAvatarBaseURL is the public avatar image service used when no
// override is configured.
const DefaultAvatarBaseURL = "https://api.multiavatar.com"

// AvatarURL derives the avatar image URL for a display name. Pure string
// construction, nothing is fetched.
func AvatarURL(base, name string) string {
	if base == "" {
		base = DefaultAvatarBaseURL
	}
	return base + "/" + url.PathEscape(name) + ".svg"
}
