// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"encoding/json"
	"github.com/alvinbaena/pwd-analyzer/pkg/strength"
	"github.com/gin-gonic/gin"
	"net/http"
	"net/http/httptest"
	"testing"
)

type analyzeBody struct {
	Entropy     float64  `json:"entropy"`
	Score       int      `json:"score"`
	Strength    string   `json:"strength"`
	CrackTime   string   `json:"crack_time"`
	Phase       string   `json:"phase"`
	Suggestions []string `json:"suggestions"`
	Zxcvbn      *struct {
		Score int `json:"score"`
	} `json:"zxcvbn"`
}

func testRouter(t *testing.T, cacheSize int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	evaluator := strength.NewEvaluator(strength.NewDictionary("password", "dragon"), strength.DefaultConfig())
	router, err := NewRouter(evaluator, cacheSize)
	if err != nil {
		t.Fatalf("NewRouter should not fail: %s", err)
	}

	return router
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyze(t *testing.T) {
	cases := []struct {
		body      string
		crackTime string
		phase     string
		strength  string
	}{
		{`{"password": "password"}`, "Instant (Exact dictionary match)", "exact-match", "Moderate"},
		{`{"password": "Dragon2024"}`, "Seconds (Dictionary + 4 digit mask attack)", "mask-attack", "Strong"},
		{`{"password": ""}`, "Days (Low entropy - brute-force feasible)", "low-entropy", "Weak"},
	}

	for _, cacheSize := range []int64{0, 100} {
		router := testRouter(t, cacheSize)

		for _, tc := range cases {
			// twice, so the second answer may come from the cache
			for i := 0; i < 2; i++ {
				w := post(router, tc.body)
				if w.Code != http.StatusOK {
					t.Fatalf("POST %s: status %d, want: %d", tc.body, w.Code, http.StatusOK)
				}

				var got analyzeBody
				if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
					t.Fatalf("Response should be JSON: %s", err)
				}

				if got.CrackTime != tc.crackTime {
					t.Errorf("POST %s crack time: %q, want: %q", tc.body, got.CrackTime, tc.crackTime)
				}
				if got.Phase != tc.phase {
					t.Errorf("POST %s phase: %q, want: %q", tc.body, got.Phase, tc.phase)
				}
				if got.Strength != tc.strength {
					t.Errorf("POST %s strength: %q, want: %q", tc.body, got.Strength, tc.strength)
				}
				if got.Suggestions == nil {
					t.Errorf("POST %s suggestions should be a list", tc.body)
				}
				if got.Zxcvbn == nil {
					t.Errorf("POST %s should include the zxcvbn opinion", tc.body)
				}
			}
		}
	}
}

func TestAnalyze_BadRequest(t *testing.T) {
	router := testRouter(t, 0)

	for _, body := range []string{`{}`, `not json`, `{"password": 42}`} {
		if w := post(router, body); w.Code != http.StatusBadRequest {
			t.Errorf("POST %s: status %d, want: %d", body, w.Code, http.StatusBadRequest)
		}
	}
}

func TestDictionary(t *testing.T) {
	router := testRouter(t, 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/dictionary", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /v1/dictionary: status %d, want: %d", w.Code, http.StatusOK)
	}

	var got dictionaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Response should be JSON: %s", err)
	}

	if got.Words != 2 {
		t.Errorf("Words: %d, want: %d", got.Words, 2)
	}
}
