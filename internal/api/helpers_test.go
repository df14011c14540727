// ABOUTME: Shared helpers for HTTP API tests
// ABOUTME: Formats ids for request paths
package api

import "strconv"

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
