// Package dto provides shared data transfer objects for API requests and responses.
package dto

import "github.com/bnema/dockcmd/internal/domain"

// CommandRequest is the body of the analyze and execute endpoints.
type CommandRequest struct {
	Command string `json:"command"`
}

// VocabularyResponse lists the supported commands.
type VocabularyResponse struct {
	Commands []domain.CommandUsage `json:"commands"`
}

// HealthResponse reports service and, when enabled, engine health.
type HealthResponse struct {
	Status        string `json:"status"`
	Engine        string `json:"engine,omitempty"`
	EngineVersion string `json:"engine_version,omitempty"`
}
