// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

// Package services adapts Bookend's long-running components to
// suture.Service: the HTTP server and the periodic sweeper that expires
// cached overviews and saved filter states.
package services
