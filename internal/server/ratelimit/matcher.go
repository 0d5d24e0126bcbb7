package ratelimit

import "strings"

// matchEndpoint finds the tier for a request path and method. Exact path
// matches win over prefix matches; prefix entries end in "/". Returns nil
// when no tier applies, leaving the caller on the default limit.
func matchEndpoint(path, method string, endpoints []EndpointConfig) *EndpointConfig {
	var prefix *EndpointConfig
	for i := range endpoints {
		ep := &endpoints[i]
		if ep.Method != "" && ep.Method != method {
			continue
		}
		if ep.Path == path {
			return ep
		}
		if strings.HasSuffix(ep.Path, "/") && strings.HasPrefix(path, ep.Path) {
			if prefix == nil || len(ep.Path) > len(prefix.Path) {
				prefix = ep
			}
		}
	}
	return prefix
}
