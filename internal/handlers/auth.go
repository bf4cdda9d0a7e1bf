package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/andrsk/aquarium-server/internal/config"
	"github.com/andrsk/aquarium-server/internal/middleware"
	"github.com/andrsk/aquarium-server/internal/repository"
)

type AuthHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	jwt     *config.JWT
}

func NewAuthHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	jwt *config.JWT,
) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		jwt:     jwt,
	}
}

type playerInfo struct {
	Username string `json:"username"`
	PlayerId int64  `json:"player_id"`
}

type authStatus struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *playerInfo `json:"player,omitempty"`
}

// Status may be called for the side effect of the auth middleware
// clearing expired cookies.
func (h AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := &authStatus{}
	if claims, ok := middleware.PlayerClaims(r); ok {
		status.LoggedIn = true
		status.Player = &playerInfo{claims.Username, claims.PlayerId}
		if err := h.refreshCookies(w, claims.PlayerId, claims.Username); err != nil {
			h.logger.Error("unable to refresh cookies", "error", err)
		}
	}
	sendJSONOrLog(w, h.logger, status)
}

func credentials(r *http.Request) (username, password string, ok bool) {
	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	return username, password, username != "" && password != ""
}

func (h AuthHandler) refreshCookies(
	w http.ResponseWriter, playerId int64, username string,
) error {
	token, err := h.jwt.Sign(config.NewPlayerClaims(playerId, username))
	if err != nil {
		return err
	}
	return h.cookies.Refresh(w, token)
}

func (h AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentials(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("body must contain url-encoded username and password"))
		return
	}
	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("password must not exceed 72 bytes"))
		return
	}
	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.logger.Error("unable to hash password", "error", err)
		return
	}
	player, err := h.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("username taken"))
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to insert player", "error", err)
		return
	}
	if err := h.refreshCookies(w, player.PlayerId, player.Username); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to sign jwt token", "error", err)
		return
	}
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentials(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("body must contain url-encoded username and password"))
		return
	}
	player, err := h.repo.FetchPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("username unknown"))
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch player", "error", err)
		return
	}
	if err := bcrypt.CompareHashAndPassword(
		player.PasswordHash, []byte(password),
	); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err := h.refreshCookies(w, player.PlayerId, player.Username); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to sign jwt token", "error", err)
		return
	}
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
}
