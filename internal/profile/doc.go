// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

// Package profile assembles reader profiles: headline KPIs, the recent
// reads and recommendation shelves, the reader's rating histogram and the
// genre/author taste hierarchy.
//
// Readers are looked up by their public dummy ID. The internal user ID
// never leaves the process.
package profile
