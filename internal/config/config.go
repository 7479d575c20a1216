// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load(ctx) layers file/env on top.
// - External errors must be wrapped via this package's error sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RemoteBaseURL is the base URL of the hierarchy service, without a
	// trailing slash.
	RemoteBaseURL string `koanf:"remote_base_url"`

	// RemoteToken is the bearer token for the hierarchy service.
	RemoteToken string `koanf:"remote_token"`

	// RemoteTimeoutMS bounds each hierarchy service round-trip.
	RemoteTimeoutMS int `koanf:"remote_timeout_ms"`

	// FieldID identifies the custom field the product name is written to.
	FieldID string `koanf:"field_id"`

	// FieldMode is the field's value mode: text or enumerated.
	FieldMode string `koanf:"field_mode"`

	// WebhookURL is the public callback URL registered with the hierarchy
	// service. Registration is skipped when empty.
	WebhookURL string `koanf:"webhook_url"`

	// WebhookPath is the local path notifications are served on.
	WebhookPath string `koanf:"webhook_path"`

	// WebhookSecret, when set, must match the shared-secret header of every
	// inbound notification.
	WebhookSecret string `koanf:"webhook_secret"`

	// WebhookEvents are the event kinds subscribed to at registration time.
	WebhookEvents []string `koanf:"webhook_events"`

	// PageSize is the page size used by the backfill entity listing.
	PageSize int `koanf:"page_size"`

	// MaxPages caps the backfill pagination loop against misbehaving cursors.
	MaxPages int `koanf:"max_pages"`

	// DedupeSize bounds the in-memory delivery-id dedupe set.
	DedupeSize int `koanf:"dedupe_size"`

	// DebugLogPayloads enables a size-capped raw payload preview in the
	// diagnostics for unrecognized notification shapes.
	DebugLogPayloads bool `koanf:"debug_log_payloads"`

	// RawPreviewBytes caps the raw payload preview length.
	RawPreviewBytes int `koanf:"raw_preview_bytes"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8099",
		RemoteTimeoutMS: 15_000,
		FieldMode:       "text",
		WebhookPath:     "/webhook",
		WebhookEvents: []string{
			"feature.created",
			"feature.updated",
			"feature.moved",
		},
		PageSize:        100,
		MaxPages:        10_000,
		DedupeSize:      100_000,
		RawPreviewBytes: 2_048,
	}
}
