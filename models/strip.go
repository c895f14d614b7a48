package models

// StripRequest is the body of POST /strip.
type StripRequest struct {
	Text string `json:"text" example:"// note\nconsole.log(x);\nlet y = 1;" binding:"required"`
	// File extension, with or without the leading dot.
	Extension string `json:"extension" example:".js" binding:"required"`
	// Defaults to the configured strip.mode.
	Mode     string `json:"mode,omitempty" example:"both" enum:"comments,logs,both"`
	LogMatch string `json:"log_match,omitempty" example:"prefix" enum:"prefix,strict"`
}

// StripResponse carries the transformed document.
type StripResponse struct {
	Text     string `json:"text" example:"let y = 1;"`
	Changed  bool   `json:"changed" example:"true"`
	Language string `json:"language" example:"js"`
}
