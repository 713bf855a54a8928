package api

import (
	"github.com/alvinbaena/pwd-analyzer/internal/report"
	"github.com/alvinbaena/pwd-analyzer/pkg/strength"
)

type analyzeRequest struct {
	// A pointer so that the empty password is accepted, but a missing one is not.
	Password *string `json:"password" binding:"required"`
}

type analyzeResponse struct {
	strength.Result
	Phase  strength.PhaseKind `json:"phase"`
	Zxcvbn *report.Opinion    `json:"zxcvbn,omitempty"`
}

type dictionaryResponse struct {
	Words int `json:"words"`
}
