package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func useTestKeys(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(t, err)

	privateKey = key
	publicKey = &key.PublicKey
}

func TestSignAndValidatePlayerID(t *testing.T) {
	useTestKeys(t)

	sign, err := Sign("alice@example.com", "")
	assert.NoError(t, err)

	id, err := ValidPlayerID(sign)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", id)
}

func TestSignAndValidateSession(t *testing.T) {
	useTestKeys(t)

	sessionID := uuid.New().String()
	sign, err := Sign("alice@example.com", sessionID)
	assert.NoError(t, err)

	session, err := ValidSession(sign)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", session.PlayerID)
	assert.Equal(t, sessionID, session.SessionID)
}

func TestValidPlayerID_InvalidAudience(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "alice@example.com",
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	id, err := ValidPlayerID(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, "", id)
}

func TestValidPlayerID_InvalidIssuer(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "alice@example.com",
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	id, err := ValidPlayerID(signedToken)
	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, "", id)
}

func TestValidPlayerID_Expired(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now()),
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(time.Hour * -1)),
		Issuer:    Issuer,
		Subject:   "alice@example.com",
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	id, err := ValidPlayerID(signedToken)
	if err != nil {
		assert.Regexp(t, "token is expired", err.Error())
	} else {
		t.Error("expected an error")
	}
	assert.Equal(t, "", id)
}
