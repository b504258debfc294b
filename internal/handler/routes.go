package handler

// Route paths shared by registration, Location headers and tests.
const (
	APIV1Prefix  = "/api/v1"
	SettingsPath = "/exchange-settings"
)
