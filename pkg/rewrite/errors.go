package rewrite

import "errors"

var (
	ErrBusy           = errors.New("a rewrite is already in progress")
	ErrIncompleteForm = errors.New("required fields are missing")
	ErrNotConfigured  = errors.New("rewrite backend not configured")
	ErrContentMissing = errors.New("content is required")
	ErrUpstream       = errors.New("rewrite backend failed")
	ErrEmptyResponse  = errors.New("rewrite backend returned no content")

	ErrSettingsMissing = errors.New("system settings are required")
	ErrDeviceUpstream  = errors.New("device info backend failed")
	ErrDeviceEmpty     = errors.New("device info backend returned no content")
)

// Messages surfaced to the user as the single main error.
const (
	MsgIncompleteForm   = "Please fill in all required fields before submitting"
	MsgNotConfigured    = "Rewrite backend not configured"
	MsgContentRequired  = "Content is required"
	MsgFailed           = "Failed to paraphrase content"
	MsgEmptyResponse    = "No paraphrased content received"
	MsgBusy             = "A rewrite is already in progress"
	MsgSettingsRequired = "System settings are required"
	MsgDeviceFailed     = "Failed to generate device information"
	MsgDeviceEmpty      = "No device information generated"
)

// UserMessage maps an error from this package to its display string.
// Anything unrecognised reads as a generic rewrite failure.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return MsgBusy
	case errors.Is(err, ErrIncompleteForm):
		return MsgIncompleteForm
	case errors.Is(err, ErrNotConfigured):
		return MsgNotConfigured
	case errors.Is(err, ErrContentMissing):
		return MsgContentRequired
	case errors.Is(err, ErrEmptyResponse):
		return MsgEmptyResponse
	case errors.Is(err, ErrSettingsMissing):
		return MsgSettingsRequired
	case errors.Is(err, ErrDeviceEmpty):
		return MsgDeviceEmpty
	case errors.Is(err, ErrDeviceUpstream):
		return MsgDeviceFailed
	default:
		return MsgFailed
	}
}
