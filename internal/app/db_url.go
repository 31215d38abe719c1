package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL makes sure the connection URL carries the
// disable_prepared_binary_result option when the config asks for it. URLs
// that already spell out a value, and strings that do not parse as URLs,
// pass through untouched.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u == nil {
		return raw
	}

	values := u.Query()
	if values.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	values.Set("disable_prepared_binary_result", "yes")
	u.RawQuery = values.Encode()
	return u.String()
}

// dbNameFromURL pulls the database name out of either a postgres:// URL or a
// key=value DSN so traces can tag the target database.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if u, err := url.Parse(trimmed); err == nil && u != nil && u.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(u.Path, "/")); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(trimmed) {
		value, ok := strings.CutPrefix(field, "dbname=")
		if !ok {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}

	return ""
}
