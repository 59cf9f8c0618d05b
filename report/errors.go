// SPDX-License-Identifier: MIT

package report

import "errors"

var (
	// ErrUnknownColormap is returned for a colormap name that is not registered.
	ErrUnknownColormap = errors.New("report: unknown colormap")

	// ErrInvalidLocale is returned when a locale string is not a BCP 47 tag.
	ErrInvalidLocale = errors.New("report: invalid locale")

	// ErrInvalidFormat is returned for a cell format without a numeric verb.
	ErrInvalidFormat = errors.New("report: invalid cell format")

	// ErrNilInput is returned when a renderer receives nil data.
	ErrNilInput = errors.New("report: nil input")
)
