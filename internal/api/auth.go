// Stub login endpoint. There is no user database yet: any non-empty
// credential pair gets a token. Placeholder until real accounts land.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": uuid.NewString(),
		"token_type":   "bearer",
	})
}
