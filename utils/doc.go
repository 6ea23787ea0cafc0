// Package utils provides internal utility functions for the HTTP layer.
//
// It contains:
//   - Timestamp formatting
package utils
