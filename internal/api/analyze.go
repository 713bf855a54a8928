// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"github.com/alvinbaena/pwd-analyzer/internal/report"
	"github.com/alvinbaena/pwd-analyzer/pkg/strength"
	"github.com/dgraph-io/ristretto"
	"github.com/gin-gonic/gin"
	"net/http"
)

type analyzeApi struct {
	evaluator *strength.Evaluator
	// nil when caching is disabled
	cache *ristretto.Cache
}

// newCache holds up to size responses. The passwords are never used as keys,
// only their digest.
func newCache(size int64) (*ristretto.Cache, error) {
	if size <= 0 {
		return nil, nil
	}

	return ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * size,
		MaxCost:     size,
		BufferItems: 64,
	})
}

func (a *analyzeApi) analyze(password string) analyzeResponse {
	var key string
	if a.cache != nil {
		key = report.Hash(password)
		if cached, ok := a.cache.Get(key); ok {
			return cached.(analyzeResponse)
		}
	}

	result := a.evaluator.Evaluate(password)
	opinion := report.SecondOpinion(password)
	resp := analyzeResponse{Result: result, Phase: result.Estimate.Phase, Zxcvbn: &opinion}

	if a.cache != nil {
		a.cache.Set(key, resp, 1)
	}

	return resp
}

func (a *analyzeApi) analyzePassword(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a.analyze(*req.Password))
}

func (a *analyzeApi) dictionary(c *gin.Context) {
	c.JSON(http.StatusOK, dictionaryResponse{Words: a.evaluator.Dictionary().Len()})
}

// RegisterAnalyzeApi mounts the analysis endpoints on group. cacheSize is the
// amount of responses kept in memory; 0 disables the cache.
func RegisterAnalyzeApi(group *gin.RouterGroup, evaluator *strength.Evaluator, cacheSize int64) error {
	cache, err := newCache(cacheSize)
	if err != nil {
		return fmt.Errorf("error creating response cache: %w", err)
	}

	a := &analyzeApi{evaluator: evaluator, cache: cache}

	group.POST("/analyze", a.analyzePassword)
	group.GET("/dictionary", a.dictionary)

	return nil
}
