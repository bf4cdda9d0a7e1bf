package app

import (
	"github.com/andrsk/aquarium-server/internal/handlers"
)

func (a *App) loadRoutes() {
	puzzle := handlers.NewPuzzleHandler(a.logger, a.db, a.ws)
	auth := handlers.NewAuthHandler(a.logger, a.db, a.cookies, a.jwt)

	a.router.HandleFunc("POST /puzzle", puzzle.Create)
	a.router.HandleFunc("GET /puzzle/{id}", puzzle.Fetch)
	a.router.HandleFunc("POST /puzzle/{id}/solve", puzzle.Solve)
	a.router.HandleFunc("GET /puzzle/{id}/render", puzzle.Render)
	a.router.HandleFunc("/puzzle/{id}/connect", puzzle.ConnectWS)
	a.router.HandleFunc("GET /puzzles", puzzle.List)

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
	a.router.HandleFunc("GET /status", auth.Status)
}
