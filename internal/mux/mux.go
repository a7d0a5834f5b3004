package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"

	"holdemtable-server/internal/jwt"
	"holdemtable-server/pkg/account"
	"holdemtable-server/pkg/holdem"
	"holdemtable-server/pkg/room"
)

type ctxKey int

const ctxSessionKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	accounts *account.Manager
	pitBoss  *room.PitBoss

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, accounts *account.Manager, opts holdem.Options) *Mux {
	pitBoss := room.NewPitBoss(accounts, opts)
	pitBoss.StartShift()

	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		accounts: accounts,
		pitBoss:  pitBoss,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/session").Handler(this.postSession())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/table/ws").Handler(this.getTableWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		session, err := jwt.ValidSession(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSessionKey, session)
		w.Header().Set("HoldemTable-PlayerID", session.PlayerID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
