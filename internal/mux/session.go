package mux

import (
	"net/http"

	"github.com/google/uuid"

	"holdemtable-server/internal/jwt"
	"holdemtable-server/pkg/account"
)

type sessionPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	JWT      string `json:"jwt"`
	PlayerID string `json:"playerId"`
	Stack    int    `json:"stack"`
}

// postSession authenticates a player and returns a signed JWT. An email
// that has never logged in registers a new account.
func (m *Mux) postSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sessionPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		sessionID := uuid.New().String()
		acct, err := m.accounts.Login(payload.Email, payload.Password, sessionID)
		if err != nil {
			switch err {
			case account.ErrInvalidEmail, account.ErrPasswordTooShort:
				writeJSONError(w, http.StatusBadRequest, err)
			case account.ErrInvalidEmailOrPassword:
				writeJSONError(w, http.StatusUnauthorized, err)
			case account.ErrAlreadyOnline:
				writeJSONError(w, http.StatusConflict, err)
			default:
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		signed, err := jwt.Sign(acct.Email, sessionID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, sessionResponse{
			JWT:      signed,
			PlayerID: acct.Email,
			Stack:    acct.Stack,
		})
	}
}
