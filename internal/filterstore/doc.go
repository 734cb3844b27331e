// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package filterstore saves catalog filter states under session IDs so the
explorer and the full listing can share criteria.

Three backends implement Store:

  - memory: a map guarded by an RWMutex; expired entries are removed by Sweep
  - badger: BadgerDB entries with native TTL; Sweep runs value-log GC
  - redis: SET with expiry, wrapped in a sony/gobreaker circuit breaker

Values are JSON records encoded with goccy/go-json. Writes are
last-write-wins. A missing or expired session matches models.ErrNotFound;
backend failures wrap ErrUnavailable.
*/
package filterstore
