// Package resolve turns user input into publish platforms.
//
// Identifiers are matched in order: alias lookup, platform number, exact
// slug or display name (case-insensitive), then unique substring match.
package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
)

// Platform is a publish target known to the backend.
type Platform struct {
	Type int    `json:"type"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (p Platform) String() string {
	if p.Name == p.Slug {
		return fmt.Sprintf("%d %s", p.Type, p.Slug)
	}
	return fmt.Sprintf("%d %s (%s)", p.Type, p.Slug, p.Name)
}

var platforms = []Platform{
	{Type: 1, Slug: "xiaohongshu", Name: "小红书"},
	{Type: 2, Slug: "tencent", Name: "视频号"},
	{Type: 3, Slug: "douyin", Name: "抖音"},
	{Type: 4, Slug: "kuaishou", Name: "快手"},
	{Type: 5, Slug: "tiktok", Name: "TikTok"},
	{Type: 6, Slug: "instagram", Name: "Instagram"},
	{Type: 7, Slug: "facebook", Name: "Facebook"},
}

// Platforms returns every platform ordered by type.
func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

// PlatformByType returns the platform with the given type number.
func PlatformByType(t int) (Platform, bool) {
	for _, p := range platforms {
		if p.Type == t {
			return p, true
		}
	}
	return Platform{}, false
}

// ResolvePlatform resolves identifier to a platform. Aliases map a user
// name to any identifier accepted here.
func ResolvePlatform(identifier string, aliases map[string]string) (Platform, error) {
	identifier = strings.TrimSpace(identifier)
	if target, ok := aliases[identifier]; ok {
		identifier = target
	}

	if p, found := matchPlatform(identifier); found {
		return p, nil
	}
	if err := checkPlatformAmbiguous(identifier); err != nil {
		return Platform{}, err
	}

	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = p.Slug
	}
	return Platform{}, exitcode.NotFoundError(fmt.Sprintf("platform %q not found; valid platforms: %s",
		identifier, strings.Join(names, ", ")))
}

func matchPlatform(identifier string) (Platform, bool) {
	if identifier == "" {
		return Platform{}, false
	}

	if n, err := strconv.Atoi(identifier); err == nil {
		return PlatformByType(n)
	}

	idLower := strings.ToLower(identifier)
	for _, p := range platforms {
		if p.Slug == idLower || strings.ToLower(p.Name) == idLower {
			return p, true
		}
	}

	matches := substringMatches(idLower)
	if len(matches) == 1 {
		return matches[0], true
	}
	return Platform{}, false
}

func substringMatches(idLower string) []Platform {
	var matches []Platform
	for _, p := range platforms {
		if strings.Contains(p.Slug, idLower) || strings.Contains(strings.ToLower(p.Name), idLower) {
			matches = append(matches, p)
		}
	}
	return matches
}

// checkPlatformAmbiguous returns a usage error if identifier matches
// several platforms.
func checkPlatformAmbiguous(identifier string) error {
	if identifier == "" {
		return nil
	}
	matches := substringMatches(strings.ToLower(identifier))
	if len(matches) < 2 {
		return nil
	}
	msg := fmt.Sprintf("platform %q is ambiguous; matches %d platforms:\n", identifier, len(matches))
	for _, m := range matches {
		msg += "  - " + m.String() + "\n"
	}
	msg += "\nUse a more specific name or the platform number."
	return exitcode.Usage(msg)
}
