package middleware

import "strings"

// NormalizePath removes route-grouping segments, the parenthesised path
// elements some frontends use to group routes without affecting the URL,
// so "/(auth)/login" and "/login" match the same rules.
func NormalizePath(p string) string {
	segments := strings.Split(p, "/")
	kept := segments[:0]
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "(") && strings.HasSuffix(seg, ")") {
			continue
		}
		kept = append(kept, seg)
	}
	if len(kept) == 0 {
		return "/"
	}
	return "/" + strings.Join(kept, "/")
}
