package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSigningMethod = jwt.GetSigningMethod("RS256")

type PlayerClaims struct {
	PlayerId int    `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func createPlayerToken(playerId int, username string) (string, error) {
	claims := PlayerClaims{
		playerId,
		username,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.Jwt.TokenLifetime.Duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	return token.SignedString(jwtPrivateKey)
}

// The token is split across two cookies: header and payload go into a
// js-readable cookie, the signature into an http-only one, so client code
// can inspect its own claims but cannot forge a full token.
func setPlayerCookies(w http.ResponseWriter, token string) {
	parts := strings.Split(token, ".")
	header, payload, signature := parts[0], parts[1], parts[2]
	jsCookie := http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    header + "." + payload,
		Secure:   !config.Development(),
		Expires:  time.Now().Add(config.Jwt.TokenLifetime.Duration),
		SameSite: http.SameSiteNoneMode,
	}
	httpCookie := http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    signature,
		Secure:   !config.Development(),
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	}
	http.SetCookie(w, &jsCookie)
	http.SetCookie(w, &httpCookie)
}

func clearPlayerCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   "auth",
		Path:   "/",
		MaxAge: -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func refreshPlayerCookies(w http.ResponseWriter, claims PlayerClaims) {
	token, err := createPlayerToken(claims.PlayerId, claims.Username)
	if err != nil {
		log.Error("unable to refresh player token: ", err)
		return
	}
	setPlayerCookies(w, token)
}

func parsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return nil, err
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return nil, err
	}
	tokenString := authCookie.Value + "." + signCookie.Value
	claims := &PlayerClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return jwtPublicKey, nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
