// File: errors.go
package captcha

import "errors"

var (
	// ErrAssetUnavailable means the canvas or font could not be prepared.
	ErrAssetUnavailable = errors.New("captcha: drawing assets unavailable")

	// ErrNoPlacement means no word/shape pair found a free spot.
	ErrNoPlacement = errors.New("captcha: no object could be placed")

	// ErrSessionMissing means there is no stored challenge for the session.
	ErrSessionMissing = errors.New("captcha: target object not found in session")

	// ErrMissingClick means the click coordinates were not supplied.
	ErrMissingClick = errors.New("captcha: click coordinates not received")

	// ErrInvalidConfig means a Config value the generator cannot work with.
	ErrInvalidConfig = errors.New("captcha: invalid config")
)
