// Package cache provides a small thread-safe LRU cache. The message
// resolver keeps compiled templates in it so repeated failures of the same
// column do not re-parse their template.
package cache
