// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		status     int
		wantStatus int
		wantBody   string
		wantErr    bool
	}{
		{"struct", struct {
			Pending int `json:"pending_changes"`
		}{3}, http.StatusOK, http.StatusOK, `{"pending_changes":3}`, false},
		{"custom status", map[string]string{"id": "l1"}, http.StatusCreated, http.StatusCreated, `{"id":"l1"}`, false},
		{"nil", nil, http.StatusOK, http.StatusOK, `null`, false},
		{"channel cannot be marshaled", make(chan int), http.StatusOK, http.StatusInternalServerError, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, n)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Servings *int `json:"servings"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr error
		isErr   bool
	}{
		{"valid", `{"servings":4}`, nil, false},
		{"valid with whitespace", " {\"servings\":4}\n", nil, false},
		{"malformed", `{"servings":`, nil, true},
		{"empty", ``, nil, true},
		{"two values", `{"servings":4}{"servings":5}`, ErrTrailingJSON, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := DecodeJSON(strings.NewReader(tt.body), &p)
			if !tt.isErr {
				require.NoError(t, err)
				require.NotNil(t, p.Servings)
				assert.Equal(t, 4, *p.Servings)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
