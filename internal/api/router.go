// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"github.com/alvinbaena/pwd-analyzer/pkg/strength"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter builds the HTTP handler of the analyzer:
//
//	POST /v1/analyze     {"password": "..."}
//	GET  /v1/dictionary
func NewRouter(evaluator *strength.Evaluator, cacheSize int64) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.SetLogger(logger.WithLogger(func(c *gin.Context, z zerolog.Logger) zerolog.Logger {
		return zerolog.New(gin.DefaultWriter).With().Timestamp().Logger()
	})))

	v1 := router.Group("/v1")
	if err := RegisterAnalyzeApi(v1, evaluator, cacheSize); err != nil {
		return nil, err
	}

	return router, nil
}
